package log

import "sync"

// Entry is one recorded call against a TestLogger.
type Entry struct {
	Level   string
	Message string
	Fields  []Field
}

// TestLogger records log calls in memory so tests can assert on them
// (e.g. that a redirect hop logged at Debug, or a transport failure at Error).
type TestLogger struct {
	mu      *sync.Mutex
	entries *[]Entry
	bound   []Field
	name    string
}

// NewTestLogger creates an empty TestLogger.
func NewTestLogger() *TestLogger {
	return &TestLogger{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (t *TestLogger) record(level, msg string, fields []Field) {
	t.mu.Lock()
	defer t.mu.Unlock()

	all := make([]Field, 0, len(t.bound)+len(fields))
	all = append(all, t.bound...)
	all = append(all, fields...)

	*t.entries = append(*t.entries, Entry{Level: level, Message: msg, Fields: all})
}

func (t *TestLogger) Debug(msg string, fields ...Field) { t.record("debug", msg, fields) }
func (t *TestLogger) Info(msg string, fields ...Field)  { t.record("info", msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...Field)  { t.record("warn", msg, fields) }
func (t *TestLogger) Error(msg string, fields ...Field) { t.record("error", msg, fields) }

func (t *TestLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(t.bound)+len(fields))
	bound = append(bound, t.bound...)
	bound = append(bound, fields...)

	return &TestLogger{mu: t.mu, entries: t.entries, bound: bound, name: t.name}
}

func (t *TestLogger) Named(name string) Logger {
	return &TestLogger{mu: t.mu, entries: t.entries, bound: t.bound, name: name}
}

func (t *TestLogger) Sync() error { return nil }

// Entries returns a snapshot of all recorded log entries across every
// logger derived from this one via With/Named.
func (t *TestLogger) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, len(*t.entries))
	copy(out, *t.entries)

	return out
}
