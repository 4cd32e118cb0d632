// Package redirect implements the redirect driver: it inspects a
// response's status, decides whether to follow Location, rewrites the
// request for 303 See Other, and scrubs credential-bearing headers on
// cross-host hops.
package redirect

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/xid"

	"github.com/xraph/httpc/internal/obs/log"
	"github.com/xraph/httpc/request"
	"github.com/xraph/httpc/response"
	"github.com/xraph/httpc/uri"
)

// DefaultBudget is the maximum number of hops followed before the last
// response is returned as-is.
const DefaultBudget = 8

// credentialHeaders are stripped whenever a hop crosses to a different
// host, case-insensitively.
var credentialHeaders = []string{"Authorization", "Cookie", "Cookie2", "Www-Authenticate"}

// SendFunc performs one request/response exchange.
type SendFunc func(ctx context.Context, req *request.Request) (*response.Response, error)

// Follow drives req through SendFunc, following redirects until budget
// is exhausted, a non-redirect status is reached, or SendFunc errors.
// It logs nothing.
func Follow(ctx context.Context, req *request.Request, budget int, send SendFunc) (*response.Response, error) {
	return FollowWithLogger(ctx, req, budget, send, log.Noop())
}

// FollowWithLogger is Follow with an explicit logger; every hop is
// logged under a single correlation id so a chain's hops can be
// traced through structured log output. A nil logger is treated as a
// no-op.
func FollowWithLogger(ctx context.Context, req *request.Request, budget int, send SendFunc, logger log.Logger) (*response.Response, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}

	if logger == nil {
		logger = log.Noop()
	}

	logger = logger.With(log.String("chain_id", xid.New().String()))

	current := req
	hop := 0

	for {
		logger.Debug("dispatching hop", log.Int("hop", hop), log.String("method", current.Method), log.String("uri", current.URI.String()))

		resp, err := send(ctx, current)
		if err != nil {
			return nil, err
		}

		action, rewritten := nextHop(current, resp)
		if action == actionReturn {
			return resp, nil
		}

		budget--
		if budget <= 0 {
			logger.Warn("redirect budget exhausted", log.Int("hop", hop))

			return resp, nil
		}

		next, err := resolveNext(current, resp, rewritten)
		if err != nil {
			return nil, fmt.Errorf("redirect: resolve location: %w", err)
		}

		current = next
		hop++
	}
}

type hopAction int

const (
	actionReturn hopAction = iota
	actionFollow
)

// nextHop classifies the response by status, reporting whether a 303
// rewrite (method→GET, body dropped) applies.
func nextHop(req *request.Request, resp *response.Response) (hopAction, bool) {
	switch resp.Status {
	case http.StatusSeeOther:
		return actionFollow, true
	case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return actionFollow, false
	default:
		return actionReturn, false
	}
}

func resolveNext(current *request.Request, resp *response.Response, rewrite303 bool) (*request.Request, error) {
	location := resp.Header.Get("Location")
	if location == "" {
		return nil, fmt.Errorf("redirect: missing Location header")
	}

	resolved, crossHost, err := uri.ResolveLocation(current.URI, location)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	next.URI = resolved

	if rewrite303 {
		next.Method = http.MethodGet
		next.Body = nil
		next.Header.Del("Content-Length")
		next.Header.Del("Content-Type")
	}

	if crossHost {
		for _, name := range credentialHeaders {
			next.Header.Del(name)
		}
	}

	return next, nil
}
