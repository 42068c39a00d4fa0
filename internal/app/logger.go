package app

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// AtomicLogger holds the process logger behind an atomic pointer so the
// config manager can swap level/format at runtime without racing active
// log calls.
type AtomicLogger struct {
	logger atomic.Pointer[slog.Logger]
	level  *slog.LevelVar
	format string
}

// NewAtomicLogger builds a logger with the given level and format
// ("json" or "text").
func NewAtomicLogger(level, format string) *AtomicLogger {
	al := &AtomicLogger{level: &slog.LevelVar{}}
	al.level.Set(parseLevel(level))
	al.rebuild(format)
	return al
}

// Get returns the current logger.
func (al *AtomicLogger) Get() *slog.Logger {
	return al.logger.Load()
}

// SetLevel changes the minimum log level in place.
func (al *AtomicLogger) SetLevel(level string) {
	al.level.Set(parseLevel(level))
}

// SetFormat swaps the handler when the output format changes.
func (al *AtomicLogger) SetFormat(format string) {
	if format == al.format {
		return
	}
	al.rebuild(format)
}

func (al *AtomicLogger) rebuild(format string) {
	opts := &slog.HandlerOptions{Level: al.level}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		format = "json"
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	al.format = format
	al.logger.Store(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch level {
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

// slogAdapter adapts the atomic logger to the use cases' Logger
// interfaces.
type slogAdapter struct {
	logger *AtomicLogger
}

func (a *slogAdapter) Debug(msg string, keysAndValues ...any) {
	a.logger.Get().Debug(msg, keysAndValues...)
}

func (a *slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Get().Info(msg, keysAndValues...)
}

func (a *slogAdapter) Warn(msg string, keysAndValues ...any) {
	a.logger.Get().Warn(msg, keysAndValues...)
}

func (a *slogAdapter) Error(msg string, keysAndValues ...any) {
	a.logger.Get().Error(msg, keysAndValues...)
}
