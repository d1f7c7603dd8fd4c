// Copyright (c) 2026 Savora. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a
strongly-typed Go struct, providing early validation and default values. A
local `.env` file, if present, is loaded first via godotenv for development
convenience.

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, token codec, image host)
    via constructors.
  - Zero Hidden State: No global variables are used to store config.

This keeps the application Twelve-Factor compliant by storing config in
the environment.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Savora API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Session tokens. The secret signs HS256 bearer tokens; the lifetime is
	// the full validity window (there is no refresh or revocation).
	TokenSecret string        `env:"TOKEN_SECRET,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// External image host (S3-compatible: R2, MinIO, or AWS itself).
	ImageBucket        string `env:"IMAGE_BUCKET,required"`
	ImageRegion        string `env:"IMAGE_REGION"   envDefault:"auto"`
	ImageEndpoint      string `env:"IMAGE_ENDPOINT"`
	ImageAccessKey     string `env:"IMAGE_ACCESS_KEY,required"`
	ImageSecretKey     string `env:"IMAGE_SECRET_KEY,required"`
	ImagePublicBaseURL string `env:"IMAGE_PUBLIC_BASE_URL,required"`

	// ExtraOrigins is a comma-separated list of exact origins allowed by
	// CORS in production, on top of savora.app and its subdomains.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A missing `.env` file is not an error: production deployments configure
// the process environment directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ExtraOriginList splits ExtraOrigins into individual origins, dropping
// blanks.
func (c *Config) ExtraOriginList() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
