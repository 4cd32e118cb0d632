package log

import (
	"time"

	"go.uber.org/zap"
)

type field struct {
	zf zap.Field
}

func (f field) ZapField() zap.Field { return f.zf }

// String creates a string field.
func String(key, value string) Field { return field{zap.String(key, value)} }

// Int creates an int field.
func Int(key string, value int) Field { return field{zap.Int(key, value)} }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return field{zap.Bool(key, value)} }

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field { return field{zap.Duration(key, value)} }

// Err creates an error field under the conventional "error" key.
func Err(err error) Field { return field{zap.Error(err)} }

// Any creates a field from an arbitrary value.
func Any(key string, value any) Field { return field{zap.Any(key, value)} }

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = f.ZapField()
	}

	return out
}
