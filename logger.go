package keva

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with keva-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBucket adds a bucket field to the logger.
func (l *Logger) WithBucket(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("bucket", name),
	}
}

// WithKey adds a key field to the logger.
func (l *Logger) WithKey(key string) *Logger {
	return &Logger{
		Logger: l.Logger.With("key", key),
	}
}

// LogStore logs a store operation.
func (l *Logger) LogStore(ctx context.Context, bucket, key string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "store failed",
			"bucket", bucket,
			"key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "store completed",
			"bucket", bucket,
			"key", key,
		)
	}
}

// LogFetch logs a fetch operation.
func (l *Logger) LogFetch(ctx context.Context, bucket, key string, conflict bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fetch failed",
			"bucket", bucket,
			"key", key,
			"error", err,
		)
	} else if conflict {
		l.WarnContext(ctx, "fetch returned siblings",
			"bucket", bucket,
			"key", key,
		)
	} else {
		l.DebugContext(ctx, "fetch completed",
			"bucket", bucket,
			"key", key,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, bucket, key string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"bucket", bucket,
			"key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"bucket", bucket,
			"key", key,
		)
	}
}
