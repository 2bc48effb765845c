// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the [app.App] root via its constructor.
  - Zero Hidden State: No global variables are used to store config.

The client shell runs embedded inside a host process (desktop shell, BFF, test
harness), so everything it needs is expressible as plain environment values.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Ripple client core.
type Config struct {

	// Runtime settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// SessionPath is the filesystem path of the durable session record.
	// Used when no Redis URL is configured.
	SessionPath string `env:"SESSION_PATH" envDefault:"./data/session.json"`

	// RedisURL selects the Redis-backed session storage when non-empty.
	RedisURL string `env:"REDIS_URL"`

	// SessionSecret signs the access token carried inside the session record.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// FeedPageSize is the number of posts fetched per feed page.
	FeedPageSize int `env:"FEED_PAGE_SIZE" envDefault:"10"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the shell is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the shell is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
