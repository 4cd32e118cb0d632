// Package log provides structured logging for the client's own ambient
// logging needs: a small Logger interface backed by zap, with a no-op
// implementation for the default configuration and an in-memory
// TestLogger for assertions.
package log

import "go.uber.org/zap"

// Logger represents the logging interface used throughout the client.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a Logger that always includes the given fields.
	With(fields ...Field) Logger
	// Named returns a Logger scoped under the given name (e.g. "redirect", "upgrade").
	Named(name string) Logger

	Sync() error
}

// Field represents a structured log field.
type Field interface {
	ZapField() zap.Field
}
