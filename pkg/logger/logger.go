// Package logger defines the structured logging interface used across the
// service. The zap-backed implementation lives in
// internal/infrastructure/monitoring.
package logger

import "context"

// Fields is a set of key-value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger is the context-aware structured logging interface.
type Logger interface {
	// Debug logs a debug message.
	Debug(ctx context.Context, msg string, fields ...Fields)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, fields ...Fields)

	// Warn logs a warning message.
	Warn(ctx context.Context, msg string, fields ...Fields)

	// Error logs an error message with its cause.
	Error(ctx context.Context, msg string, err error, fields ...Fields)

	// Fatal logs a fatal message and terminates the process.
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields returns a logger that attaches the fields to every entry.
	WithFields(fields Fields) Logger
}
