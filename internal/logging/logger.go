// Package logging defines the structured-logging interface used across the
// console. New picks the implementation from the configured format: ZapLogger
// (go.uber.org/zap, "console") or SlogLogger (log/slog, "text").
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

const (
	FormatConsole = "console"
	FormatText    = "text"
)

// New builds the logger for format at level. The returned sync func flushes
// buffered entries and must be called before exit. Zap writes to stderr;
// the text format writes to w.
func New(format, level string, w io.Writer) (Logger, func() error, error) {
	switch format {
	case "", FormatConsole:
		zl, err := NewConsoleZap(level)
		if err != nil {
			return nil, nil, err
		}
		z := NewZapLogger(zl)
		return z, z.Sync, nil
	case FormatText:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		return NewTextLogger(w, lvl), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown log format %q (use %s or %s)", format, FormatConsole, FormatText)
}

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key/value pairs, e.g.:
//
//	log.Info(ctx, "login succeeded", "user_id", id, "role", role)
type Logger interface {
	// Debug logs diagnostic detail (request traces, cache hits).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key/value pairs.
	With(args ...any) Logger
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }
