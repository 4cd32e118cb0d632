package redirect

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/httpc/internal/obs/log"
	"github.com/xraph/httpc/request"
	"github.com/xraph/httpc/response"
)

func mustBuild(t *testing.T, method, rawURI string) *request.Request {
	t.Helper()

	req, err := request.New(method, rawURI).
		SetHeader("Authorization", "Bearer secret").
		SetHeader("Cookie", "session=abc").
		Build()
	require.NoError(t, err)

	return req
}

func respWithLocation(status int, location string) *response.Response {
	h := make(http.Header)
	if location != "" {
		h.Set("Location", location)
	}

	return response.New(status, h, nil, nil)
}

func TestFollow_NonRedirectReturnsImmediately(t *testing.T) {
	req := mustBuild(t, http.MethodGet, "http://example.com/")

	calls := 0
	resp, err := Follow(context.Background(), req, DefaultBudget, func(ctx context.Context, r *request.Request) (*response.Response, error) {
		calls++
		return response.New(http.StatusOK, make(http.Header), nil, nil), nil
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, 1, calls)
}

func TestFollow_303RewritesToGETAndDropsBody(t *testing.T) {
	req := mustBuild(t, http.MethodPost, "http://example.com/submit")
	req.Body = []byte("payload")

	var seenMethods []string

	calls := 0
	_, err := Follow(context.Background(), req, DefaultBudget, func(ctx context.Context, r *request.Request) (*response.Response, error) {
		seenMethods = append(seenMethods, r.Method)
		calls++

		if calls == 1 {
			return respWithLocation(http.StatusSeeOther, "/result"), nil
		}

		assert.Nil(t, r.Body)

		return response.New(http.StatusOK, make(http.Header), nil, nil), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPost, http.MethodGet}, seenMethods)
}

func TestFollow_302PreservesMethodAndBody(t *testing.T) {
	req := mustBuild(t, http.MethodPost, "http://example.com/a")
	req.Body = []byte("keep me")

	calls := 0
	_, err := Follow(context.Background(), req, DefaultBudget, func(ctx context.Context, r *request.Request) (*response.Response, error) {
		calls++
		if calls == 1 {
			return respWithLocation(http.StatusFound, "/b"), nil
		}

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "keep me", string(r.Body))

		return response.New(http.StatusOK, make(http.Header), nil, nil), nil
	})
	require.NoError(t, err)
}

func TestFollow_CrossHostScrubsCredentials(t *testing.T) {
	req := mustBuild(t, http.MethodGet, "http://a.example.com/")

	calls := 0
	_, err := Follow(context.Background(), req, DefaultBudget, func(ctx context.Context, r *request.Request) (*response.Response, error) {
		calls++
		if calls == 1 {
			assert.NotEmpty(t, r.Header.Get("Authorization"))
			return respWithLocation(http.StatusFound, "http://b.example.com/"), nil
		}

		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Cookie"))

		return response.New(http.StatusOK, make(http.Header), nil, nil), nil
	})
	require.NoError(t, err)
}

func TestFollow_SameHostKeepsCredentials(t *testing.T) {
	req := mustBuild(t, http.MethodGet, "http://a.example.com/x")

	calls := 0
	_, err := Follow(context.Background(), req, DefaultBudget, func(ctx context.Context, r *request.Request) (*response.Response, error) {
		calls++
		if calls == 1 {
			return respWithLocation(http.StatusFound, "/y"), nil
		}

		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		return response.New(http.StatusOK, make(http.Header), nil, nil), nil
	})
	require.NoError(t, err)
}

func TestFollow_RelativeLocationJoinsPath(t *testing.T) {
	req := mustBuild(t, http.MethodGet, "http://example.com/a/b/")

	calls := 0
	_, err := Follow(context.Background(), req, DefaultBudget, func(ctx context.Context, r *request.Request) (*response.Response, error) {
		calls++
		if calls == 1 {
			return respWithLocation(http.StatusFound, "../c"), nil
		}

		assert.Equal(t, "/a/c", r.URI.Path)

		return response.New(http.StatusOK, make(http.Header), nil, nil), nil
	})
	require.NoError(t, err)
}

func TestFollow_BudgetExhaustionReturnsLastResponse(t *testing.T) {
	req := mustBuild(t, http.MethodGet, "http://example.com/")

	calls := 0
	resp, err := Follow(context.Background(), req, 2, func(ctx context.Context, r *request.Request) (*response.Response, error) {
		calls++
		return respWithLocation(http.StatusFound, "/next"), nil
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, 2, calls)
}

func TestFollowWithLogger_LogsEachHopUnderSharedChainID(t *testing.T) {
	req := mustBuild(t, http.MethodGet, "http://example.com/")
	logger := log.NewTestLogger()

	calls := 0
	_, err := FollowWithLogger(context.Background(), req, DefaultBudget, func(ctx context.Context, r *request.Request) (*response.Response, error) {
		calls++
		if calls == 1 {
			return respWithLocation(http.StatusFound, "/next"), nil
		}

		return response.New(http.StatusOK, make(http.Header), nil, nil), nil
	}, logger)
	require.NoError(t, err)

	entries := logger.Entries()
	require.Len(t, entries, 2)

	var chainIDs []string
	for _, e := range entries {
		assert.Equal(t, "dispatching hop", e.Message)

		for _, f := range e.Fields {
			if f.ZapField().Key == "chain_id" {
				chainIDs = append(chainIDs, f.ZapField().String)
			}
		}
	}

	require.Len(t, chainIDs, 2)
	assert.Equal(t, chainIDs[0], chainIDs[1])
}
