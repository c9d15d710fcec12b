package logging

import (
	"context"

	"github.com/hostprep/hostprep/internal/ports"
)

// NopLogger discards all log messages. Useful in tests.
type NopLogger struct{}

// NewNopLogger creates a logger that discards everything.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (l *NopLogger) Debug(context.Context, string, ...ports.Field) {}

// Info discards the message.
func (l *NopLogger) Info(context.Context, string, ...ports.Field) {}

// Warn discards the message.
func (l *NopLogger) Warn(context.Context, string, ...ports.Field) {}

// Error discards the message.
func (l *NopLogger) Error(context.Context, string, ...ports.Field) {}

// With returns the same nop logger.
func (l *NopLogger) With(...ports.Field) ports.Logger { return l }

var _ ports.Logger = (*NopLogger)(nil)
