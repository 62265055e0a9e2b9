package dynview

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dynview-specific helpers so that all views
// log with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, a default text handler writing to stderr is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// LogUpdate logs an index recomputation.
func (l *Logger) LogUpdate(size int, active, notified bool) {
	l.Debug("index updated",
		"size", size,
		"active", active,
		"notified", notified,
	)
}

// LogFilterChange logs a change to the filter registry.
func (l *Logger) LogFilterChange(op string, count int) {
	l.Debug("filters changed",
		"op", op,
		"count", count,
	)
}

// LogSortChange logs a change to the active comparator.
func (l *Logger) LogSortChange(active bool) {
	l.Debug("sort changed",
		"active", active,
	)
}

// LogDerivedCreate logs the creation of a derived view.
func (l *Logger) LogDerivedCreate(name string) {
	l.Debug("derived view created",
		"name", name,
	)
}

// LogDestroy logs the teardown of a view.
func (l *Logger) LogDestroy(subscribers int) {
	l.Debug("view destroyed",
		"subscribers", subscribers,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(op, codec, compression string, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"codec", codec,
			"compression", compression,
			"error", err,
		)
	} else {
		l.Debug("snapshot completed",
			"op", op,
			"codec", codec,
			"compression", compression,
		)
	}
}
