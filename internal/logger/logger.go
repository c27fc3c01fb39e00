package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

type ctxKey string

// RequestIDKey is the context key under which the request id is stored.
const RequestIDKey ctxKey = "request_id"

var defaultLogger *slog.Logger

// Init initializes the global logger with the specified level and format.
func Init(level, format string) {
	var logLevel slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "INFO":
		logLevel = slog.LevelInfo
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the default logger instance.
func Get() *slog.Logger {
	if defaultLogger == nil {
		Init("INFO", "json")
	}
	return defaultLogger
}

// WithContext returns a logger with context-specific fields.
func WithContext(ctx context.Context) *slog.Logger {
	log := Get()
	if reqID := ctx.Value(RequestIDKey); reqID != nil {
		log = log.With("request_id", reqID)
	}
	return log
}

// WithFields returns a logger with additional key-value pairs.
func WithFields(fields ...any) *slog.Logger {
	return Get().With(fields...)
}

// Fatal logs an error message and exits the application.
// Helper since slog doesn't have a Fatal level.
func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}
