// Package config loads reddit-search settings from defaults, a YAML file,
// REDDIT_SEARCH_ environment variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the resolved configuration shared by the CLI and the TUI.
type Config struct {
	BaseURL   string        `koanf:"base_url"`
	UserAgent string        `koanf:"user_agent"`
	Token     string        `koanf:"token"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`
	Burst     int           `koanf:"burst"`
	Cache     CacheConfig   `koanf:"cache"`
	Log       LogConfig     `koanf:"log"`
}

// CacheConfig selects the page cache. An empty RedisAddr with a positive TTL
// uses an in-process cache; a zero TTL disables caching.
type CacheConfig struct {
	RedisAddr string        `koanf:"redis_addr"`
	TTL       time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("base_url %q must be an absolute URL", c.BaseURL)
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return errors.New("user_agent is required")
	}
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	if c.RateLimit < 0 {
		return errors.New("rate_limit cannot be negative")
	}
	if c.Burst < 0 {
		return errors.New("burst cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}
