package nearest

import (
	"log/slog"
	"os"

	"github.com/hupe1980/nearest/index"
)

// Logger wraps slog.Logger with store-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithKind adds the index kind to the logger.
func (l *Logger) WithKind(kind index.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(count, size int, err error) {
	if err != nil {
		l.Error("add failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("add completed",
			"count", count,
			"size", size,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(removed bool, size int, err error) {
	if err != nil {
		l.Error("remove failed",
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"removed", removed,
			"size", size,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(op string, k, resultsFound int, err error) {
	if err != nil {
		l.Error("search failed",
			"op", op,
			"k", k,
			"error", err,
		)
	} else {
		l.Debug("search completed",
			"op", op,
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogRebuild logs an index rebuild. A failed rebuild leaves the store
// empty.
func (l *Logger) LogRebuild(reason string, size, capacity int, err error) {
	if err != nil {
		l.Error("rebuild failed, store emptied",
			"reason", reason,
			"lost", size,
			"error", err,
		)
	} else {
		l.Info("index rebuilt",
			"reason", reason,
			"size", size,
			"capacity", capacity,
		)
	}
}

// LogBuildFailure logs a failed fresh build. The store was rolled back to
// its previous state.
func (l *Logger) LogBuildFailure(count int, err error) {
	l.Warn("index build failed, rolled back",
		"count", count,
		"error", err,
	)
}
