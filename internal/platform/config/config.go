// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto a typed [Config] using caarlos0/env.

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The struct is built once at startup and passed by pointer to constructors. Nothing
in the codebase reads os.Getenv directly.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Readlog API server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// RSA key pair for access-token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// External book catalog (Google Books v1 compatible)
	CatalogBaseURL string        `env:"CATALOG_BASE_URL" envDefault:"https://www.googleapis.com/books/v1"`
	CatalogAPIKey  string        `env:"CATALOG_API_KEY"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT"  envDefault:"8s"`

	// SearchCacheTTL bounds how long an external search result is reused.
	SearchCacheTTL time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"1h"`

	// Cross-Origin Resource Sharing (production only; development allows any origin)
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"readlog.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.SearchCacheTTL <= 0 {
		return nil, fmt.Errorf("config: SEARCH_CACHE_TTL must be positive, got %s", cfg.SearchCacheTTL)
	}

	return cfg, nil
}

// CLIConfig is the subset of settings readlogctl needs. Nothing is required up
// front; commands that touch the database check DatabaseURL themselves.
type CLIConfig struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	CatalogBaseURL string        `env:"CATALOG_BASE_URL" envDefault:"https://www.googleapis.com/books/v1"`
	CatalogAPIKey  string        `env:"CATALOG_API_KEY"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT"  envDefault:"8s"`
}

// LoadCLI parses environment variables into a [CLIConfig].
func LoadCLI() (*CLIConfig, error) {
	cfg := &CLIConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffix returns the host suffix accepted by CORS outside development.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}
