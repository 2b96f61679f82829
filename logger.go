package cuckooindex

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gostonefire/cuckooindex/crt"
)

// Logger - Wraps slog.Logger with consistent field names for index lifecycle and failure logs.
// Only creation is logged at info level, everything else at debug level.
type Logger struct {
	*slog.Logger
}

// NewLogger - Returns a Logger using the given handler, nil means a text handler writing to stderr at info level
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

// NewTextLogger - Returns a Logger writing human-readable text to stderr
//   - level is the minimum level logged, e.g. slog.LevelDebug
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger - Returns a Logger writing JSON to stderr
//   - level is the minimum level logged, e.g. slog.LevelDebug
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger - Returns a Logger that discards everything
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// WithName - Returns a Logger tagging every record with the index name
func (L *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: L.Logger.With("index", name),
	}
}

// LogCreate - Logs a successful index creation
func (L *Logger) LogCreate(config Config, capacity int) {
	L.Info("index created",
		"hash_bits", config.HashBits,
		"bucket_size", config.BucketSize,
		"max_relocation_depth", config.MaxRelocationDepth,
		"capacity", capacity,
		"lock", config.LockEnabled,
		"stats", config.StatsEnabled,
	)
}

// LogCreateFailed - Logs a failed table allocation
func (L *Logger) LogCreateFailed(config Config, err error) {
	L.Error("index creation failed",
		"hash_bits", config.HashBits,
		"bucket_size", config.BucketSize,
		"error", err,
	)
}

// LogDestroy - Logs index destruction together with the number of items still stored
func (L *Logger) LogDestroy(items int) {
	L.Debug("index destroyed", "items", items)
}

// LogFlush - Logs a flush
func (L *Logger) LogFlush(removed int, policy int) {
	L.Debug("index flushed", "removed", removed, "notification", crt.FlushName(policy))
}

// LogTableFull - Logs an insert that ran out of relocation budget
func (L *Logger) LogTableFull(h1, h2 uint32, depth int, items int) {
	if !L.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	L.Debug("insert failed, table full",
		"h1", h1,
		"h2", h2,
		"max_relocation_depth", depth,
		"items", items,
	)
}
