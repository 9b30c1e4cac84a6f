// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A '.env' file in the
working directory, when present, is loaded first with 'joho/godotenv'; variables
already set in the process environment always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, tokens) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the MADR API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Access token signing
	SecretKey                string `env:"SECRET_KEY,required,notEmpty"`
	AccessTokenAlgorithm     string `env:"ACCESS_TOKEN_ALGORITHM"      envDefault:"HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"60"`

	// Key-Value store (Redis). Empty disables login throttling.
	RedisURL           string        `env:"REDIS_URL"`
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS"   envDefault:"5"`
	LoginLockoutWindow time.Duration `env:"LOGIN_LOCKOUT_WINDOW" envDefault:"15m"`

	// Cross-Origin Resource Sharing
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// supportedAlgorithms lists the HMAC signing methods accepted for access tokens.
var supportedAlgorithms = []string{"HS256", "HS384", "HS512"}

// # Configuration Loading

// Load reads an optional '.env' file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current process environment into a [Config] and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	c.AccessTokenAlgorithm = strings.ToUpper(c.AccessTokenAlgorithm)

	supported := false
	for _, alg := range supportedAlgorithms {
		if c.AccessTokenAlgorithm == alg {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("config: unsupported ACCESS_TOKEN_ALGORITHM %q (want one of %s)",
			c.AccessTokenAlgorithm, strings.Join(supportedAlgorithms, ", "))
	}

	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.AccessTokenExpireMinutes)
	}

	if c.LoginMaxAttempts <= 0 {
		return fmt.Errorf("config: LOGIN_MAX_ATTEMPTS must be positive, got %d", c.LoginMaxAttempts)
	}

	if c.LoginLockoutWindow <= 0 {
		return fmt.Errorf("config: LOGIN_LOCKOUT_WINDOW must be positive, got %s", c.LoginLockoutWindow)
	}

	return nil
}

// AccessTokenTTL is the lifetime of an issued bearer token.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the CORS origin allow-list.
func (c *Config) AllowedOrigins() []string {
	return c.CORSAllowedOrigins
}
