package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/robert-malhotra/go-reddit-search/pkg/client"
)

const (
	// EnvPrefix marks environment overrides. A double underscore separates
	// nesting levels: REDDIT_SEARCH_CACHE__REDIS_ADDR sets cache.redis_addr.
	EnvPrefix = "REDDIT_SEARCH_"

	DefaultFile    = "reddit-search.yaml"
	DefaultFileAlt = "reddit-search.yml"
)

func defaults() map[string]any {
	return map[string]any{
		"base_url":   client.DefaultBaseURL,
		"user_agent": client.DefaultUserAgent,
		"timeout":    "30s",
		"rate_limit": 1.0,
		"burst":      5,
		"cache.ttl":  "0s",
		"log.level":  "warn",
		"log.format": "text",
	}
}

// Load resolves configuration with precedence overrides > env > file > defaults.
// An empty path looks for reddit-search.yaml or reddit-search.yml in the working
// directory and skips the file layer when neither exists. Override keys use the
// dotted koanf form, e.g. "cache.ttl"; nil values are ignored.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if set := compact(overrides); len(set) > 0 {
		if err := k.Load(confmap.Provider(set, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// envKey maps REDDIT_SEARCH_LOG__LEVEL to log.level.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func findConfigFile() string {
	for _, name := range []string{DefaultFile, DefaultFileAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func compact(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
