package zcurve

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with zcurve-specific context.
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

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithBackend adds a compression backend field to the logger.
func (l *Logger) WithBackend(backend string) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", backend),
	}
}

// LogQuantize logs one quantization run of a sweep. The cluster count is
// expected as logger context, see WithK.
func (l *Logger) LogQuantize(ctx context.Context, samples int, distortion float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "quantization failed",
			"samples", samples,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "quantization completed",
			"samples", samples,
			"distortion", distortion,
		)
	}
}

// LogCurve logs completion of a curve assembly.
func (l *Logger) LogCurve(ctx context.Context, points, surrogates int) {
	l.InfoContext(ctx, "compression curve assembled",
		"points", points,
		"surrogates", surrogates,
	)
}
