package bytebuf

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bytebuf-specific context.
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

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(capacity int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity),
	}
}

// WithChunk adds a chunk index field to the logger.
func (l *Logger) WithChunk(index int) *Logger {
	return &Logger{
		Logger: l.Logger.With("chunk", index),
	}
}

// LogGrow logs an elastic growth step.
func (l *Logger) LogGrow(oldCapacity, newCapacity int64) {
	l.Debug("buffer grown",
		"old_capacity", oldCapacity,
		"new_capacity", newCapacity,
	)
}

// LogChunkMap logs a mapped-file chunk materialization.
func (l *Logger) LogChunkMap(path string, index int, size int64) {
	l.Debug("chunk mapped",
		"path", path,
		"chunk", index,
		"size", size,
	)
}

// LogChunkUnmap logs a mapped-file chunk release.
func (l *Logger) LogChunkUnmap(path string, index int) {
	l.Debug("chunk unmapped",
		"path", path,
		"chunk", index,
	)
}
