package logger

import (
	"sync/atomic"

	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
)

// NoopLogger discards every entry; it only remembers its level.
// Used by tests and the load-test script.
type NoopLogger struct {
	level atomic.Int32
}

// NewNoopLogger creates a new no-op logger
func NewNoopLogger() coreport.Logger {
	l := &NoopLogger{}
	l.level.Store(int32(coreport.LogLevelInfo))
	return l
}

// SetLevel sets the minimum log level
func (l *NoopLogger) SetLevel(level coreport.LogLevel) {
	l.level.Store(int32(level))
}

// GetLevel gets the current log level
func (l *NoopLogger) GetLevel() coreport.LogLevel {
	return coreport.LogLevel(l.level.Load())
}

func (l *NoopLogger) Debug(string, map[string]any) {}

func (l *NoopLogger) Info(string, map[string]any) {}

func (l *NoopLogger) Warn(string, map[string]any) {}

func (l *NoopLogger) Error(string, map[string]any) {}

// Flush has nothing to write
func (l *NoopLogger) Flush() error {
	return nil
}
