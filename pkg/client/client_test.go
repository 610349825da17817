package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

func TestNewClient_Defaults(t *testing.T) {
	cli, err := NewClient()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cli.BaseURL().String())
	assert.Equal(t, DefaultUserAgent, cli.userAgent)
	assert.NotNil(t, cli.Compiler())
	assert.Equal(t, 30*time.Second, cli.httpClient.Timeout)
}

func TestNewClient_Options(t *testing.T) {
	tests := []struct {
		name    string
		opt     ClientOption
		wantErr error
	}{
		{name: "empty base url", opt: WithBaseURL(""), wantErr: ErrInvalidBaseURL},
		{name: "relative base url", opt: WithBaseURL("/search"), wantErr: ErrInvalidBaseURL},
		{name: "nil http client", opt: WithHTTPClient(nil), wantErr: ErrNilHTTPClient},
		{name: "negative retries", opt: WithMaxRetries(-1)},
		{name: "zero concurrency", opt: WithConcurrency(0)},
		{name: "nil compiler", opt: WithCompiler(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.opt)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	cli, err := NewClient(WithBaseURL("https://oauth.reddit.com/api"), WithTimeout(5*time.Second), WithUserAgent(" "))
	require.NoError(t, err)
	assert.Equal(t, "https://oauth.reddit.com/api/", cli.BaseURL().String())
	assert.Equal(t, 5*time.Second, cli.httpClient.Timeout)
	assert.Equal(t, DefaultUserAgent, cli.userAgent)
}

func TestClient_HeadersAndMiddleware(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "yes", r.Header.Get("X-Trace"))
		fmt.Fprint(w, listingJSON("", "a"))
	}))
	defer server.Close()

	bearer, err := BearerToken("secret")
	require.NoError(t, err)
	trace, err := Header("x-trace", "yes")
	require.NoError(t, err)

	cli := newTestClient(t, server, WithUserAgent("test-agent/1.0"), WithMiddleware(bearer, nil, trace))
	_, err = cli.SearchPage(context.Background(), "self:1", SearchParams{}, "")
	require.NoError(t, err)
}

func TestClient_MiddlewareError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request")
	}))
	defer server.Close()

	boom := errors.New("token expired")
	cli := newTestClient(t, server, WithMiddleware(func(context.Context, *http.Request) error { return boom }))
	_, err := cli.SearchPage(context.Background(), "self:1", SearchParams{}, "")
	assert.ErrorIs(t, err, boom)
}

func TestAuthConstructors(t *testing.T) {
	_, err := BearerToken("  ")
	assert.Error(t, err)
	_, err = BasicAuth("", "pw")
	assert.Error(t, err)
	_, err = Header(" ", "v")
	assert.Error(t, err)

	mw, err := BasicAuth("app", "pw")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, mw(context.Background(), req))
	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "app", user)
	assert.Equal(t, "pw", pass)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, listingJSON("", "a"))
	}))
	defer server.Close()

	noDelay := RetryPolicyFunc(func(resp *http.Response, err error) (bool, time.Duration) {
		return err != nil || resp.StatusCode >= 500, 0
	})
	cli, err := NewClient(WithBaseURL(server.URL), WithRetryPolicy(noDelay))
	require.NoError(t, err)

	page, err := cli.SearchPage(context.Background(), "self:1", SearchParams{}, "")
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestClient_RetryLimit(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "busy", http.StatusTooManyRequests)
	}))
	defer server.Close()

	always := RetryPolicyFunc(func(*http.Response, error) (bool, time.Duration) { return true, 0 })
	cli, err := NewClient(WithBaseURL(server.URL), WithRetryPolicy(always), WithMaxRetries(2))
	require.NoError(t, err)

	_, err = cli.SearchPage(context.Background(), "self:1", SearchParams{}, "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Temporary())
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestClient_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingJSON("", "a"))
	}))
	defer server.Close()

	cli := newTestClient(t, server, WithRateLimit(rate.Every(time.Hour), 1))

	_, err := cli.SearchPage(context.Background(), "self:1", SearchParams{}, "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = cli.SearchPage(ctx, "self:1", SearchParams{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}

func TestClient_Cache(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Query().Get("q") == "fail:1" {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, listingJSON("", "a"))
	}))
	defer server.Close()

	cache := NewMemoryCache()
	cli := newTestClient(t, server, WithCache(cache, time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		page, err := cli.SearchPage(ctx, "self:1", SearchParams{}, "")
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))

	_, err := cli.SearchPage(ctx, "self:1", SearchParams{Sort: SortNew}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))

	_, err = cli.SearchPage(ctx, "fail:1", SearchParams{}, "")
	require.Error(t, err)
	assert.Equal(t, 2, cache.Len(), "failed responses are not cached")
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("down")
}

func TestClient_CacheFailuresAreIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingJSON("", "a"))
	}))
	defer server.Close()

	cli := newTestClient(t, server, WithCache(brokenCache{}, time.Minute))
	page, err := cli.SearchPage(context.Background(), "self:1", SearchParams{}, "")
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
}

func TestClient_CustomCompiler(t *testing.T) {
	schema := search.MustSchema(search.FieldDescriptor{Name: "Keyword", QueryName: "kw", Kind: search.StringValue})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kw:go", r.URL.Query().Get("q"))
		io.WriteString(w, listingJSON("", "a"))
	}))
	defer server.Close()

	cli := newTestClient(t, server, WithCompiler(search.NewCompiler(schema)))
	posts, err := Collect(cli.Search(context.Background(), search.Is("Keyword", "go"), SearchParams{}), 0)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
