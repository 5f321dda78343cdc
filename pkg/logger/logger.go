// Package logger defines the structured logging contract used across the
// service. Implementations live in internal/infrastructure/monitoring.
package logger

import "context"

// Fields carries structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger is the context-aware structured logger used by every component.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Fields)
	Info(ctx context.Context, msg string, fields ...Fields)
	Warn(ctx context.Context, msg string, fields ...Fields)
	Error(ctx context.Context, msg string, err error, fields ...Fields)
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields returns a logger that attaches fields to every entry.
	WithFields(fields Fields) Logger
}
