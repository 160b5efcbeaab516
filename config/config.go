package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything a gallery client needs to run. Values come from
// environment variables (a .env file is honored when present); an explicit
// YAML config file, when given, overrides the environment.
type Config struct {
	BaseURL        string        `env:"GALLERY_BASE_URL" envDefault:"http://localhost:8000" yaml:"base_url"`
	RequestTimeout time.Duration `env:"GALLERY_REQUEST_TIMEOUT" envDefault:"30s" yaml:"request_timeout"`

	// SessionPath is where the file-backed session store lives. Empty means
	// <user config dir>/gallerykit/session.json.
	SessionPath string `env:"GALLERY_SESSION_PATH" yaml:"session_path"`
	// SessionKey optionally enables at-rest encryption of the session file.
	// Base64-encoded 32 bytes.
	SessionKey string `env:"GALLERY_SESSION_KEY" yaml:"session_key"`
	// RedisURL switches the session store to Redis when set.
	RedisURL string `env:"GALLERY_REDIS_URL" yaml:"redis_url"`

	LogLevel  string `env:"GALLERY_LOG_LEVEL" envDefault:"info" yaml:"log_level"`
	LogFormat string `env:"GALLERY_LOG_FORMAT" envDefault:"text" yaml:"log_format"`

	LoginPath    string `env:"GALLERY_LOGIN_PATH" envDefault:"/login.html" yaml:"login_path"`
	RegisterPath string `env:"GALLERY_REGISTER_PATH" envDefault:"/register.html" yaml:"register_path"`
	LandingPath  string `env:"GALLERY_LANDING_PATH" envDefault:"/index.html" yaml:"landing_path"`
}

var defaultEnvLoaded sync.Once

// Load populates a Config from the environment. The default .env file is
// loaded once per process, best-effort; a missing file is fine.
func Load() (Config, error) {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// LoadFile populates a Config from the environment, then overlays the YAML
// document at path. Keys absent from the file keep their environment
// values.
func LoadFile(path string) (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Join(ErrReadingConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfigFile, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure. Useful at CLI startup
// where there is nothing sensible to do without configuration.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// EncryptionKey decodes SessionKey. Returns nil when no key is configured.
func (c Config) EncryptionKey() ([]byte, error) {
	if c.SessionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.SessionKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidSessionKey, err)
	}
	if len(key) != 32 {
		return nil, ErrInvalidSessionKey
	}
	return key, nil
}
