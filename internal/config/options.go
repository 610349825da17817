package config

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/robert-malhotra/go-reddit-search/pkg/client"
)

// ClientOptions translates the configuration into client options. The returned
// close function releases the Redis connection when one was opened.
func (c *Config) ClientOptions(logger *slog.Logger) ([]client.ClientOption, func() error, error) {
	opts := []client.ClientOption{
		client.WithBaseURL(c.BaseURL),
		client.WithUserAgent(c.UserAgent),
		client.WithTimeout(c.Timeout),
		client.WithRateLimit(rate.Limit(c.RateLimit), c.Burst),
		client.WithLogger(logger),
	}
	closeFn := func() error { return nil }

	if c.Token != "" {
		mw, err := client.BearerToken(c.Token)
		if err != nil {
			return nil, nil, fmt.Errorf("token: %w", err)
		}
		opts = append(opts, client.WithMiddleware(mw))
	}

	if c.Cache.TTL > 0 {
		if c.Cache.RedisAddr != "" {
			rc := client.NewRedisCache(redis.NewClient(&redis.Options{Addr: c.Cache.RedisAddr}), "reddit-search:")
			opts = append(opts, client.WithCache(rc, c.Cache.TTL))
			closeFn = rc.Close
		} else {
			opts = append(opts, client.WithCache(client.NewMemoryCache(), c.Cache.TTL))
		}
	}
	return opts, closeFn, nil
}
