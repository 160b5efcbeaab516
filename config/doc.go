// Package config loads gallery client configuration from environment
// variables, with an optional YAML file overlay for per-profile setups.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is loaded once per process (missing file is fine), then
// the environment is parsed into the Config struct via `env` tags. LoadFile
// additionally overlays an explicit YAML document on top, so a config file
// wins over the environment for the keys it sets.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatalf("config: %v", err)
//	}
//
//	api := client.New(cfg.BaseURL, ...)
//
// Sentinel errors (ErrParsingConfig, ErrReadingConfigFile,
// ErrParsingConfigFile, ErrInvalidSessionKey) can be matched with errors.Is.
package config
