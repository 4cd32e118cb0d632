// Package httpc is the client facade: it glues a Connector and Config
// together and offers Request/Send/RedirectRequest/SendRedirect.
package httpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/httpc/internal/obs/log"
	"github.com/xraph/httpc/internal/transport"
	"github.com/xraph/httpc/redirect"
	"github.com/xraph/httpc/request"
	"github.com/xraph/httpc/response"
	"github.com/xraph/httpc/timed"
)

// Client is immutable after construction and safe to share by reference
// across goroutines; it holds its connector and configuration by value.
type Client struct {
	cfg Config
}

// New builds a Client from DefaultConfig.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig builds a Client, filling unset fields from DefaultConfig
// and validating the result.
func NewWithConfig(cfg Config) (*Client, error) {
	resolved, err := cfg.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("httpc: invalid config: %w", err)
	}

	return &Client{cfg: resolved}, nil
}

func (c *Client) applyDefaultHeaders(req *request.Request) {
	if c.cfg.DefaultHeaders != nil {
		c.cfg.DefaultHeaders(req)
	}
}

// maybeInjectAcceptEncoding adds Accept-Encoding only when decompression
// is enabled and Range is already present, so a partial response is
// never silently decompressed.
func (c *Client) maybeInjectAcceptEncoding(req *request.Request) {
	if !c.cfg.Decompress {
		return
	}

	if req.Header.Get("Range") == "" {
		return
	}

	if req.Header.Get("Accept-Encoding") != "" {
		return
	}

	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
}

// Request performs a single exchange with no deadline and no redirect
// following.
func (c *Client) Request(ctx context.Context, req *request.Request) (*response.Response, error) {
	c.applyDefaultHeaders(req)
	c.maybeInjectAcceptEncoding(req)

	logger := c.cfg.Logger.Named("client")
	logger.Debug("dispatching request", log.String("method", req.Method), log.String("uri", req.URI.String()))

	c.cfg.Collector.RequestStarted(req.Method, req.URI.Host)

	stream, err := c.cfg.Connector.Call(ctx, req.URI)
	if err != nil {
		return nil, fmt.Errorf("httpc: connect: %w", err)
	}

	resp, err := transport.Do(stream, req)
	if err != nil {
		stream.Close()

		return nil, fmt.Errorf("httpc: exchange: %w", err)
	}

	c.cfg.Collector.RequestCompleted(req.Method, req.URI.Host, resp.Status)

	return resp, nil
}

// Send performs Request under the Config's deadline, resolving to either
// the response or a timed.TimeoutError/TransportError/TimerErrorErr
// carrying a retry token.
func (c *Client) Send(ctx context.Context, req *request.Request) (*response.Response, error) {
	resp, err := timed.Execute(ctx, c.cfg.Timer, *c.cfg.Timeout, func(innerCtx context.Context) (*response.Response, error) {
		return c.Request(innerCtx, req)
	})
	if err != nil {
		var timeoutErr *timed.TimeoutError
		if errors.As(err, &timeoutErr) {
			c.cfg.Collector.Timeout()
		}
	}

	return resp, err
}

// RedirectRequest performs Request, following redirects per the Config's
// hop budget, with no overall deadline.
func (c *Client) RedirectRequest(ctx context.Context, req *request.Request) (*response.Response, error) {
	return redirect.FollowWithLogger(ctx, req, c.cfg.MaxRedirectNum, func(hopCtx context.Context, hopReq *request.Request) (*response.Response, error) {
		resp, err := c.Request(hopCtx, hopReq)
		if err == nil && resp.IsRedirect() {
			c.cfg.Collector.RedirectFollowed()
		}

		return resp, err
	}, c.cfg.Logger.Named("redirect"))
}

// SendRedirect combines Send and RedirectRequest: the outer deadline
// bounds the whole redirect chain, not each hop.
func (c *Client) SendRedirect(ctx context.Context, req *request.Request) (*response.Response, error) {
	return timed.Execute(ctx, c.cfg.Timer, *c.cfg.Timeout, func(innerCtx context.Context) (*response.Response, error) {
		return c.RedirectRequest(innerCtx, req)
	})
}
