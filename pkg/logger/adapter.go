package logger

import (
	"io"

	"github.com/igorsal/api-console/internal/interfaces"
)

// Adapter adapts Logger to interfaces.Logger
type Adapter struct {
	logger *Logger
}

// NewAdapter creates a new logger adapter
func NewAdapter(level, format string) interfaces.Logger {
	return &Adapter{
		logger: New(level, format),
	}
}

// NewAdapterWithWriter creates an adapter writing to w
func NewAdapterWithWriter(level, format string, w io.Writer) interfaces.Logger {
	return &Adapter{
		logger: NewWithWriter(level, format, w),
	}
}

// NewNop returns a logger that discards everything
func NewNop() interfaces.Logger {
	return NewAdapterWithWriter("disabled", "json", io.Discard)
}

// Debug logs a debug message with optional fields
func (a *Adapter) Debug(msg string, fields ...interface{}) {
	a.logger.Debug(msg, fields...)
}

// Info logs an info message with optional fields
func (a *Adapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, fields...)
}

// Warn logs a warning message with optional fields
func (a *Adapter) Warn(msg string, fields ...interface{}) {
	a.logger.Warn(msg, fields...)
}

// Error logs an error message with optional fields
func (a *Adapter) Error(msg string, err error, fields ...interface{}) {
	a.logger.Error(msg, err, fields...)
}

// Fatal logs a fatal message and exits
func (a *Adapter) Fatal(msg string, err error, fields ...interface{}) {
	a.logger.Fatal(msg, err, fields...)
}
