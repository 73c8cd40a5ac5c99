// Package logging defines the structured-logging interface used by the
// BiteBoxd client and two backends for it: log/slog (text) and zerolog (JSON).
package logging

import (
	"context"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "login succeeded", "email", email)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Format selects the logging backend.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New builds a Logger writing to w. "json" selects zerolog, anything else
// falls back to the slog text handler. Unknown levels mean "info".
func New(w io.Writer, level string, format Format) Logger {
	if Format(strings.ToLower(string(format))) == FormatJSON {
		return NewZerologLogger(w, level)
	}
	return NewTextLogger(w, level)
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewTextLogger(io.Discard, "error")
}
