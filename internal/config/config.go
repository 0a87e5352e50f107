// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"time"
)

// Catalog source names accepted in CATALOG_SOURCE.
const (
	SourceStatic   = "static"
	SourcePostgres = "postgres"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// TrustProxy makes the contact rate limiter key on X-Forwarded-For.
	// Set it only when a reverse proxy rewrites that header.
	TrustProxy bool

	// Catalog
	CatalogSource string // "static" or "postgres"
	CatalogFile   string // optional YAML file replacing the embedded catalog
	MediaDir      string // directory served at /media for locally hosted videos

	// PostgreSQL connection (only used with the postgres catalog source)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible page cache). Empty host disables caching.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	PageCacheTTL   time.Duration

	// S3-compatible storage for download hand-off. Empty endpoint falls back
	// to Google Drive links.
	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3BucketPrivate string

	// Contact details shown on the contact page.
	ContactEmail string
	ContactPhone string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or malformed.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		TrustProxy: os.Getenv("TRUST_PROXY") == "true",

		CatalogSource: envOrDefault("CATALOG_SOURCE", SourceStatic),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
		MediaDir:      envOrDefault("MEDIA_DIR", "media"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "barrierfree"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "barrierfree"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3BucketPrivate: envOrDefault("S3_BUCKET_PRIVATE", "barrierfree-downloads"),

		ContactEmail: envOrDefault("CONTACT_EMAIL", "info@educationalplatform.com"),
		ContactPhone: envOrDefault("CONTACT_PHONE", "+1 (555) 123-4567"),
	}

	ttl, err := time.ParseDuration(envOrDefault("PAGE_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("PAGE_CACHE_TTL: %w", err)
	}
	cfg.PageCacheTTL = ttl

	switch cfg.CatalogSource {
	case SourceStatic, SourcePostgres:
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", SourceStatic, SourcePostgres, cfg.CatalogSource)
	}

	if cfg.Env == "production" && cfg.UsesPostgres() {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UsesPostgres reports whether the catalog is read from PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.CatalogSource == SourcePostgres
}

// CacheEnabled reports whether a Valkey page cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// S3Enabled reports whether downloads are handed off through S3.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
