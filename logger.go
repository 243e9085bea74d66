package knntune

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with knntune-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithFold adds a fold id field to the logger.
func (l *Logger) WithFold(fold int) *Logger {
	return &Logger{
		Logger: l.Logger.With("fold", fold),
	}
}

// WithSeed adds a seed field to the logger.
func (l *Logger) WithSeed(seed int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSplit logs a stratified split.
func (l *Logger) LogSplit(ctx context.Context, names []string, sizes []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "split failed",
			"groups", names,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "split completed",
			"groups", names,
			"sizes", sizes,
		)
	}
}

// LogFold logs one cross-validation fold.
func (l *Logger) LogFold(ctx context.Context, k, fold int, accuracy float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fold failed",
			"k", k,
			"fold", fold,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "fold completed",
			"k", k,
			"fold", fold,
			"accuracy", accuracy,
		)
	}
}

// LogCandidate logs the outcome of one tuning candidate.
func (l *Logger) LogCandidate(ctx context.Context, k int, mean, stderr float64, err error) {
	if err != nil {
		l.WarnContext(ctx, "candidate excluded",
			"k", k,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "candidate evaluated",
			"k", k,
			"mean", mean,
			"stderr", stderr,
		)
	}
}

// LogHoldout logs a holdout evaluation.
func (l *Logger) LogHoldout(ctx context.Context, k int, accuracy float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "holdout failed",
			"k", k,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "holdout completed",
			"k", k,
			"accuracy", accuracy,
		)
	}
}

// LogArchive logs a report upload.
func (l *Logger) LogArchive(ctx context.Context, key string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "archive failed",
			"key", key,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report archived",
			"key", key,
			"bytes", size,
		)
	}
}
