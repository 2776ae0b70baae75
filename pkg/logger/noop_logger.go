package logger

import "context"

// noopLogger discards all log entries. Used in tests and as a safe default.
type noopLogger struct{}

// NewNoopLogger returns a Logger that discards everything.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (n *noopLogger) Debug(ctx context.Context, msg string, fields ...Fields)            {}
func (n *noopLogger) Info(ctx context.Context, msg string, fields ...Fields)             {}
func (n *noopLogger) Warn(ctx context.Context, msg string, fields ...Fields)             {}
func (n *noopLogger) Error(ctx context.Context, msg string, err error, fields ...Fields) {}
func (n *noopLogger) Fatal(ctx context.Context, msg string, err error, fields ...Fields) {}
func (n *noopLogger) WithFields(fields Fields) Logger                                    { return n }
