package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrReadingConfigFile is returned when the given config file cannot be read.
	ErrReadingConfigFile = errors.New("failed to read config file")

	// ErrParsingConfigFile is returned when the config file is not valid YAML.
	ErrParsingConfigFile = errors.New("failed to parse config file")

	// ErrInvalidSessionKey is returned when the session encryption key is
	// not base64-encoded 32 bytes.
	ErrInvalidSessionKey = errors.New("session key must be base64-encoded 32 bytes")
)
