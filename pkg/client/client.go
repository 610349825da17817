package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

const (
	// DefaultBaseURL serves anonymous requests. OAuth clients use https://oauth.reddit.com/.
	DefaultBaseURL   = "https://www.reddit.com/"
	DefaultUserAgent = "go-reddit-search/0.1"

	defaultMaxRetries  = 3
	defaultConcurrency = 4
	maxBodyBytes       = 8 << 20
)

// Middleware manipulates an outgoing *http.Request before it is executed.
type Middleware func(context.Context, *http.Request) error

// Client issues compiled search queries against Reddit's search endpoints.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	userAgent   string
	middleware  []Middleware
	retryPolicy RetryPolicy
	maxRetries  int
	limiter     *rate.Limiter
	cache       Cache
	cacheTTL    time.Duration
	compiler    *search.Compiler
	concurrency int
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewClient creates a search client. Without options it talks to DefaultBaseURL
// anonymously, compiles against search.RedditSchema and retries with DefaultRetryPolicy.
func NewClient(opts ...ClientOption) (*Client, error) {
	base, err := parseBaseURL(DefaultBaseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:     base,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		userAgent:   DefaultUserAgent,
		retryPolicy: DefaultRetryPolicy,
		maxRetries:  defaultMaxRetries,
		compiler:    search.NewCompiler(nil),
		concurrency: defaultConcurrency,
		logger:      slog.New(slog.DiscardHandler),
		tracer:      otel.Tracer("github.com/robert-malhotra/go-reddit-search/pkg/client"),
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns a copy of the configured base URL.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Compiler returns the compiler used by Search.
func (c *Client) Compiler() *search.Compiler { return c.compiler }

func parseBaseURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() {
		return nil, ErrInvalidBaseURL
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// fetch returns the body of a successful GET, consulting the cache first.
func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cacheKey(rawURL)
	if c.cache != nil {
		data, ok, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.WarnContext(ctx, "cache read failed", "error", err)
		case ok:
			c.logger.DebugContext(ctx, "cache hit", "url", rawURL)
			return data, nil
		}
	}

	resp, err := c.doRequest(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading response from %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := newAPIError(resp.StatusCode, data)
		c.logger.ErrorContext(ctx, "request failed", "url", rawURL, "status", resp.StatusCode)
		return nil, apiErr
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
			c.logger.WarnContext(ctx, "cache write failed", "error", err)
		}
	}
	return data, nil
}

// doRequest builds the request, runs middleware, waits on the rate limiter and
// retries according to the retry policy. Every outbound call funnels through here.
func (c *Client) doRequest(ctx context.Context, method, rawURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request for %s: %w", rawURL, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		for _, mw := range c.middleware {
			if err := mw(ctx, req); err != nil {
				return nil, fmt.Errorf("error applying middleware for %s: %w", rawURL, err)
			}
		}

		c.logger.DebugContext(ctx, "request", "method", method, "url", rawURL, "attempt", attempt+1)
		resp, err := c.httpClient.Do(req)

		if c.retryPolicy == nil || attempt >= c.maxRetries || ctx.Err() != nil {
			return resp, err
		}
		retry, delay := c.retryPolicy.ShouldRetry(resp, err)
		if !retry {
			return resp, err
		}
		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
		c.logger.WarnContext(ctx, "retrying request", "url", rawURL, "attempt", attempt+1, "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay * time.Duration(attempt+1)):
		}
	}
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "search:" + hex.EncodeToString(sum[:])
}
