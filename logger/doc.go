// Package logger builds configured slog.Logger instances for the gallery
// client. Three formats are supported: json for aggregation, text for plain
// terminals, and pretty (github.com/lmittmann/tint) for interactive use.
// Output defaults to stderr so command results on stdout stay clean.
package logger
