package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development.
	FormatText Format = "text"
	// FormatPretty outputs colorized logs for interactive terminal use.
	FormatPretty Format = "pretty"
)

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format.
// Panics for invalid formats to enforce fail-fast initialization.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText, FormatPretty:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q, %q or %q", f, FormatJSON, FormatText, FormatPretty))
		}
	}
}

// WithOutput sets a custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

type config struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

// defaultConfig favors interactive use: text format at info level on stderr,
// keeping stdout free for command output.
func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatText,
		output: os.Stderr,
	}
}

// ParseLevel maps a config string onto a slog.Level. Unknown strings fall
// back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseFormat maps a config string onto a Format. Unknown strings fall back
// to text.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatJSON, FormatText, FormatPretty:
		return Format(s)
	default:
		return FormatText
	}
}

// New creates a configured slog.Logger.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var handler slog.Handler
	switch cfg.format {
	case FormatPretty:
		handler = tint.NewHandler(cfg.output, &tint.Options{
			Level:      cfg.level,
			TimeFormat: time.TimeOnly,
		})
	case FormatText:
		handler = slog.NewTextHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level})
	default:
		handler = slog.NewJSONHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level})
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}
	return slog.New(handler)
}
