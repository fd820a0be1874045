package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
)

func (c *Config) Validate() error {
	// Catalog connection
	if strings.TrimSpace(c.Catalog.BaseURL) == "" {
		return errors.New("catalog.base_url is required")
	}
	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("catalog.base_url must be an http(s) URL, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.APIToken == "" && c.Catalog.Username == "" {
		return errors.New("catalog.api_token or catalog.username/catalog.password is required")
	}
	if c.Catalog.APIToken == "" && c.Catalog.Password == "" {
		return errors.New("catalog.password is required when catalog.username is set")
	}
	if c.Catalog.Timeout < 0 {
		return errors.New("catalog.timeout must not be negative")
	}

	// Resolver
	if c.Resolver.FuzzyLimit < 0 {
		return errors.New("resolver.fuzzy_limit must not be negative")
	}

	// Entries
	if c.Entries.DefaultLimit <= 0 {
		return errors.New("entries.default_limit must be positive")
	}
	if c.Entries.MaxLimit < c.Entries.DefaultLimit {
		return fmt.Errorf("entries.max_limit (%d) must be >= entries.default_limit (%d)", c.Entries.MaxLimit, c.Entries.DefaultLimit)
	}

	// Logging
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}

	return nil
}
