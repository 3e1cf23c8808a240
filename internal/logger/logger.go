// Package logger provides logging utilities for the migration tools.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Logger provides structured logging functionality.
type Logger struct {
	internal *slog.Logger
}

// Options configures a Logger. Zero values select info level text output on stderr.
type Options struct {
	Writer io.Writer
	Level  string
	Format string
}

// NewLogger creates a new logger instance with the specified level.
func NewLogger(level string) *Logger {
	return NewLoggerWithOptions(Options{Level: level})
}

// NewLoggerWithOptions creates a logger with an explicit format and writer.
func NewLoggerWithOptions(o Options) *Logger {
	w := o.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(o.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(o.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		internal: slog.New(handler),
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

// With creates a child logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		internal: l.internal.With(args...),
	}
}

// Log logs a message with the given level and attributes.
func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	l.internal.Log(ctx, level, msg, args...)
}

// Err logs err at the given level with its category, text code and metadata attached.
func (l *Logger) Err(ctx context.Context, level slog.Level, msg string, err error) {
	attrs := append([]slog.Attr{slog.String("error", err.Error())}, goerrors.ToSlogAttributes(err)...)
	l.internal.LogAttrs(ctx, level, msg, attrs...)
}
