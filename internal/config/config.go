// Package config loads and validates portal configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the portal server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// BackendURL is the base URL of the upstream tourism REST API. Required.
	BackendURL string

	// APIToken is the portal's own bearer token for upstream reads.
	// Optional; per-user tokens from login take over for admin mutations.
	APIToken string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins for
	// the JSON endpoints. Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// CacheTTL is the freshness window for fetched lists and records;
	// repeated reads inside it are served from cache. Defaults to 30s.
	CacheTTL time.Duration

	// RedisAddr selects the Redis cache store when non-empty. Empty means
	// the in-process memory store.
	RedisAddr string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		APIToken:    os.Getenv("API_TOKEN"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
	}

	var missing []string

	cfg.BackendURL = os.Getenv("BACKEND_API_URL")
	if cfg.BackendURL == "" {
		missing = append(missing, "BACKEND_API_URL")
	}

	ttl := getEnv("CACHE_TTL", "30s")
	parsed, err := time.ParseDuration(ttl)
	if err != nil || parsed <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be a positive duration, got %q", ttl)
	}
	cfg.CacheTTL = parsed

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
