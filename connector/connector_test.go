package connector

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/httpc/uri"
)

func TestHTTP_CallConnects(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan struct{})

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			close(accepted)
			conn.Close()
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	u := &uri.URI{Scheme: "http", Host: host, Port: port, Path: "/"}

	c := NewHTTP()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stream, err := c.Call(ctx, u)
	require.NoError(t, err)
	defer stream.Close()

	select {
	case <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted connection")
	}
}

func TestHTTP_CallDefaultsPort80(t *testing.T) {
	u := &uri.URI{Scheme: "http", Host: "127.0.0.1", Path: "/"}
	assert.Equal(t, "80", resolvePort(u, "80"))
}

func TestHTTPS_CallDefaultsPort443(t *testing.T) {
	u := &uri.URI{Scheme: "https", Host: "127.0.0.1", Path: "/"}
	assert.Equal(t, "443", resolvePort(u, "443"))
}

func TestHTTP_CallFailsOnRefusedConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	ln.Close()

	u := &uri.URI{Scheme: "http", Host: host, Port: port, Path: "/"}

	c := NewHTTP()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = c.Call(ctx, u)
	assert.Error(t, err)
}
