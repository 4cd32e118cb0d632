// Package request implements the Request value and its fluent Builder.
package request

import (
	"net/http"

	"github.com/xraph/httpc/uri"
)

// Request is method+URI+headers+optional body, built once by a Builder
// and then owned exclusively by the Client for the duration of one
// exchange.
type Request struct {
	Method string
	URI    *uri.URI
	Header http.Header
	Body   []byte

	// Extensions carries opaque per-request side-data — e.g. the
	// Websocket handshake key stashed by upgrade.PrepareRequest so the response
	// verifier can recompute the accept challenge.
	Extensions *Extensions
}

// Clone returns a deep-enough copy for the redirect driver to mutate
// (method/body/headers) without touching the original request.
func (r *Request) Clone() *Request {
	clone := &Request{
		Method:     r.Method,
		URI:        r.URI.Clone(),
		Header:     r.Header.Clone(),
		Extensions: r.Extensions.clone(),
	}

	if r.Body != nil {
		clone.Body = append([]byte(nil), r.Body...)
	}

	return clone
}

// Extensions is a typed side-map carried alongside a Request (and,
// optionally, swapped into the resulting Response).
type Extensions struct {
	m map[string]any
}

// NewExtensions creates an empty extension map.
func NewExtensions() *Extensions { return &Extensions{m: make(map[string]any)} }

func (e *Extensions) clone() *Extensions {
	if e == nil {
		return NewExtensions()
	}

	out := NewExtensions()
	for k, v := range e.m {
		out.m[k] = v
	}

	return out
}

// Set stores value under key.
func (e *Extensions) Set(key string, value any) {
	if e.m == nil {
		e.m = make(map[string]any)
	}

	e.m[key] = value
}

// Get retrieves the raw value stored under key.
func (e *Extensions) Get(key string) (any, bool) {
	if e == nil {
		return nil, false
	}

	v, ok := e.m[key]

	return v, ok
}

// GetString retrieves a string value stored under key.
func (e *Extensions) GetString(key string) (string, bool) {
	v, ok := e.Get(key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Take removes and returns the value under key, mirroring the original's
// "swap rather than clone" hand-off of extensions into the response.
func (e *Extensions) Take(key string) (any, bool) {
	v, ok := e.Get(key)
	if ok {
		delete(e.m, key)
	}

	return v, ok
}
