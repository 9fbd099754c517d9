package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents different deployment environments.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the sync service.
// Environment variables are parsed from the STASH_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Store configuration. DBDriver "auto" derives postgres when a DSN is
	// set and sqlite otherwise.
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/stash.db"`

	// Upstream platform API. Overridable so tests can point at a stub.
	UpstreamBaseURL string        `envconfig:"UPSTREAM_BASE_URL" default:"https://api.twitter.com"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`

	// Background sync. Cron expression; empty disables the scheduler.
	SyncSchedule string `envconfig:"SYNC_SCHEDULE" default:""`

	BootstrapTimeoutSeconds int           `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"30"`
	HealthProbeTimeout      time.Duration `envconfig:"HEALTH_PROBE_TIMEOUT" default:"5s"`
}

// ResolveDefaults derives DBDriver when set to "auto" or empty and validates
// configured values.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("STASH_POSTGRES_DSN is required when DB_DRIVER=postgres")
	}
	if c.UpstreamBaseURL == "" {
		return fmt.Errorf("STASH_UPSTREAM_BASE_URL must not be empty")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with STASH_
// Example: STASH_HTTP_PORT, STASH_POSTGRES_DSN.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("STASH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:             EnvTesting,
		HTTPPort:                8080,
		DBDriver:                "sqlite",
		SQLitePath:              "",
		UpstreamBaseURL:         "http://localhost:0",
		UpstreamTimeout:         5 * time.Second,
		BootstrapTimeoutSeconds: 5,
		HealthProbeTimeout:      time.Second,
	}
}

// IsTesting returns true if the environment is set to testing.
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production.
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }
