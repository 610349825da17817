package client

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

// ClientOption configures a Client during construction.
type ClientOption func(*Client) error

// WithBaseURL sets the service base URL.
func WithBaseURL(raw string) ClientOption {
	return func(c *Client) error {
		u, err := parseBaseURL(raw)
		if err != nil {
			return err
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		if httpClient == nil {
			return ErrNilHTTPClient
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithTimeout sets the timeout on the underlying http.Client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) error {
		if d > 0 {
			c.httpClient.Timeout = d
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header. Reddit throttles generic agents.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// WithMiddleware registers one or more request-middleware functions.
func WithMiddleware(mw ...Middleware) ClientOption {
	return func(c *Client) error {
		for _, m := range mw {
			if m != nil {
				c.middleware = append(c.middleware, m)
			}
		}
		return nil
	}
}

// WithRetryPolicy replaces the retry policy. A nil policy disables retries.
func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) error {
		c.retryPolicy = policy
		return nil
	}
}

// WithMaxRetries caps the number of retries per request.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) error {
		if n < 0 {
			return errors.New("client: max retries cannot be negative")
		}
		c.maxRetries = n
		return nil
	}
}

// WithRateLimit throttles outgoing requests to r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) ClientOption {
	return func(c *Client) error {
		if r <= 0 {
			c.limiter = nil
			return nil
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(r, burst)
		return nil
	}
}

// WithCache stores successful search pages in cache for ttl.
func WithCache(cache Cache, ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.cache = cache
		c.cacheTTL = ttl
		return nil
	}
}

// WithCompiler replaces the predicate compiler, e.g. to use a custom schema.
func WithCompiler(compiler *search.Compiler) ClientOption {
	return func(c *Client) error {
		if compiler == nil {
			return errors.New("client: compiler cannot be nil")
		}
		c.compiler = compiler
		return nil
	}
}

// WithConcurrency bounds the number of searches SearchAll runs at once.
func WithConcurrency(n int) ClientOption {
	return func(c *Client) error {
		if n < 1 {
			return errors.New("client: concurrency must be at least 1")
		}
		c.concurrency = n
		return nil
	}
}

// WithLogger registers a logger for request lifecycle events.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithTracerProvider uses tp instead of the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *Client) error {
		if tp != nil {
			c.tracer = tp.Tracer("github.com/robert-malhotra/go-reddit-search/pkg/client")
		}
		return nil
	}
}
