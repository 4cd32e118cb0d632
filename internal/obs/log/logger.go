package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger implements Logger using zap.
type zapLogger struct {
	z *zap.Logger
}

// New creates a production-profile JSON logger at the given level.
func New(level zapcore.Level) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return Noop()
	}

	return &zapLogger{z: z}
}

// NewDevelopment creates a human-readable console logger, for use outside
// of production (examples, local debugging of redirect/retry decisions).
func NewDevelopment() Logger {
	z, err := zap.NewDevelopment(zap.AddCallerSkip(1))
	if err != nil {
		return Noop()
	}

	return &zapLogger{z: z}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, toZap(fields)...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, toZap(fields)...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, toZap(fields)...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, toZap(fields)...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{z: l.z.With(toZap(fields)...)}
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{z: l.z.Named(name)}
}

func (l *zapLogger) Sync() error { return l.z.Sync() }

// noopLogger implements Logger but discards everything; the client's default.
type noopLogger struct{}

// Noop returns a Logger that discards all log entries.
func Noop() Logger { return noopLogger{} }

func (noopLogger) Debug(string, ...Field)  {}
func (noopLogger) Info(string, ...Field)   {}
func (noopLogger) Warn(string, ...Field)   {}
func (noopLogger) Error(string, ...Field)  {}
func (l noopLogger) With(...Field) Logger  { return l }
func (l noopLogger) Named(string) Logger   { return l }
func (noopLogger) Sync() error             { return nil }
