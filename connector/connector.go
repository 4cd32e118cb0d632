// Package connector implements the pluggable transport boundary the
// client dials through: a Connector takes a URI and hands back a
// connected, bidirectional byte stream.
package connector

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/xraph/httpc/uri"
)

// Stream is the bidirectional byte stream a Connector hands back once
// dialing (and, for HTTPS, the TLS handshake) has completed.
type Stream interface {
	net.Conn
}

// Connector dials u and returns a connected Stream. Implementations are
// expected to apply scheme-default ports (https→443, else→80) when
// u.Port is unset.
type Connector interface {
	Call(ctx context.Context, u *uri.URI) (Stream, error)
}

// DialTimeout bounds how long the TCP handshake (and, for HTTPS, the TLS
// handshake) is allowed to take before Call gives up.
const DialTimeout = 30 * time.Second

func resolvePort(u *uri.URI, fallback string) string {
	if u.Port != "" {
		return u.Port
	}

	if d := uri.DefaultPort(u.Scheme); d != "" {
		return d
	}

	return fallback
}

// HTTP is the plain-TCP connector. Dialing an https:// URI through it is
// not an error at the connector boundary — the resulting stream is
// simply cleartext, and any TLS-only expectation downstream is the
// caller's problem; only the HTTPS-only connector below rejects
// plaintext.
type HTTP struct {
	Dialer *net.Dialer
}

// NewHTTP builds an HTTP connector with the package's default dial
// timeout.
func NewHTTP() *HTTP {
	return &HTTP{Dialer: &net.Dialer{Timeout: DialTimeout}}
}

func (c *HTTP) Call(ctx context.Context, u *uri.URI) (Stream, error) {
	dialer := c.Dialer
	if dialer == nil {
		dialer = &net.Dialer{Timeout: DialTimeout}
	}

	port := resolvePort(u, "80")

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(u.Host, port))
	if err != nil {
		return nil, fmt.Errorf("connector: dial %s: %w", u.Host, err)
	}

	return conn, nil
}

// HTTPS is the TLS connector. It produces a TLS stream unconditionally;
// a plain-http URI dialed through it will attempt (and fail) a TLS
// handshake against a cleartext server.
type HTTPS struct {
	Dialer    *net.Dialer
	TLSConfig *tls.Config
}

// NewHTTPS builds an HTTPS connector. ALPN offers "h2" alongside
// "http/1.1" so servers that only understand one or the other still
// negotiate cleanly, but the core only ever speaks HTTP/1.1 regardless
// of what the handshake settles on.
func NewHTTPS() *HTTPS {
	return &HTTPS{
		Dialer: &net.Dialer{Timeout: DialTimeout},
		TLSConfig: &tls.Config{
			NextProtos: []string{"h2", "http/1.1"},
			MinVersion: tls.VersionTLS12,
		},
	}
}

func (c *HTTPS) Call(ctx context.Context, u *uri.URI) (Stream, error) {
	dialer := c.Dialer
	if dialer == nil {
		dialer = &net.Dialer{Timeout: DialTimeout}
	}

	cfg := c.TLSConfig
	if cfg == nil {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	if cfg.ServerName == "" {
		cfg = cfg.Clone()
		cfg.ServerName = u.Host
	}

	port := resolvePort(u, "443")

	tlsDialer := &tls.Dialer{NetDialer: dialer, Config: cfg}

	conn, err := tlsDialer.DialContext(ctx, "tcp", net.JoinHostPort(u.Host, port))
	if err != nil {
		return nil, fmt.Errorf("connector: tls dial %s: %w", u.Host, err)
	}

	return conn.(*tls.Conn), nil
}
