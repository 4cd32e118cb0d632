// Package metrics keeps the Counter/Gauge/Summary shape (and the
// github.com/beorn7/perks-backed quantile stream for latency summaries)
// a single-purpose client library needs for request lifecycle
// instrumentation, without multi-backend export/registry/health
// machinery (see DESIGN.md).
package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/beorn7/perks/quantile"
)

// Counter tracks a monotonically increasing value, labeled by method+host
// or encoding.
type Counter interface {
	Inc(labels ...string)
	Value(labels ...string) float64
}

// Gauge tracks a value that can go up or down.
type Gauge interface {
	Set(value float64, labels ...string)
	Value(labels ...string) float64
}

// Summary calculates streaming quantiles (e.g. request latency).
type Summary interface {
	Observe(value float64)
	Count() uint64
	Quantile(q float64) float64
}

// Collector is what the client records request lifecycle events into.
// Noop() is the default; callers may supply their own (e.g. a Prometheus
// adapter) by implementing this interface.
type Collector interface {
	RequestStarted(method, host string)
	RequestCompleted(method, host string, status int)
	RedirectFollowed()
	Timeout()
	BodyBytes(encoding string, n int)
	Latency() Summary
}

// counter is a label-keyed monotonic counter.
type counter struct {
	mu     sync.Mutex
	values map[string]*atomic.Uint64
}

func newCounter() *counter { return &counter{values: make(map[string]*atomic.Uint64)} }

func (c *counter) key(labels []string) string {
	key := ""
	for _, l := range labels {
		key += "\x00" + l
	}

	return key
}

func (c *counter) Inc(labels ...string) {
	key := c.key(labels)

	c.mu.Lock()
	v, ok := c.values[key]
	if !ok {
		v = &atomic.Uint64{}
		c.values[key] = v
	}
	c.mu.Unlock()

	v.Add(1)
}

func (c *counter) Value(labels ...string) float64 {
	key := c.key(labels)

	c.mu.Lock()
	v, ok := c.values[key]
	c.mu.Unlock()

	if !ok {
		return 0
	}

	return float64(v.Load())
}

// summary wraps a beorn7/perks quantile.Stream, trimmed to the three
// quantiles the client reports on.
type summary struct {
	mu     sync.Mutex
	stream *quantile.Stream
	count  uint64
}

func newSummary() *summary {
	objectives := map[float64]float64{0.5: 0.01, 0.9: 0.01, 0.99: 0.001}

	return &summary{stream: quantile.NewTargeted(objectives)}
}

func (s *summary) Observe(value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stream.Insert(value)
	s.count++
}

func (s *summary) Count() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.count
}

func (s *summary) Quantile(q float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stream.Query(q)
}

// collector is the default in-process Collector implementation.
type collector struct {
	requests  *counter
	completed *counter
	redirects atomic.Uint64
	timeouts  atomic.Uint64
	bodyBytes *counter
	latency   *summary
}

// New creates the default in-memory Collector.
func New() Collector {
	return &collector{
		requests:  newCounter(),
		completed: newCounter(),
		bodyBytes: newCounter(),
		latency:   newSummary(),
	}
}

func (c *collector) RequestStarted(method, host string) { c.requests.Inc(method, host) }

func (c *collector) RequestCompleted(method, host string, status int) {
	c.completed.Inc(method, host, statusClass(status))
}

func (c *collector) RedirectFollowed() { c.redirects.Add(1) }
func (c *collector) Timeout()          { c.timeouts.Add(1) }

func (c *collector) BodyBytes(encoding string, n int) {
	if n <= 0 {
		return
	}

	key := c.bodyBytes.key([]string{encoding})

	c.bodyBytes.mu.Lock()
	v, ok := c.bodyBytes.values[key]
	if !ok {
		v = &atomic.Uint64{}
		c.bodyBytes.values[key] = v
	}
	c.bodyBytes.mu.Unlock()

	v.Add(uint64(n))
}

func (c *collector) Latency() Summary { return c.latency }

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}

// noopCollector discards everything; the client's default when the caller
// doesn't configure a Collector.
type noopCollector struct{}

// Noop returns a Collector that does nothing.
func Noop() Collector { return noopCollector{} }

func (noopCollector) RequestStarted(string, string)         {}
func (noopCollector) RequestCompleted(string, string, int)  {}
func (noopCollector) RedirectFollowed()                     {}
func (noopCollector) Timeout()                              {}
func (noopCollector) BodyBytes(string, int)                 {}
func (noopCollector) Latency() Summary                      { return noopSummary{} }

type noopSummary struct{}

func (noopSummary) Observe(float64)      {}
func (noopSummary) Count() uint64        { return 0 }
func (noopSummary) Quantile(float64) float64 { return 0 }
