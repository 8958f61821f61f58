// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// ApperBaseURL is the Apper platform endpoint.
	// Defaults to "https://api.apper.io".
	ApperBaseURL string

	// ApperProjectID identifies the Apper project owning the tables. Required.
	ApperProjectID string

	// ApperPublicKey authenticates requests to the Apper platform. Required.
	ApperPublicKey string

	// WatermarkFunction is the name of the Apper function that watermarks
	// contact photos. Empty disables watermarking; photos are then served
	// with their stored URL.
	WatermarkFunction string

	// AuthSecret is the HMAC key that verifies bearer tokens. Required.
	AuthSecret string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		ApperBaseURL:      getEnv("APPER_BASE_URL", "https://api.apper.io"),
		WatermarkFunction: os.Getenv("WATERMARK_FUNCTION"),
	}

	var missing []string

	cfg.ApperProjectID = os.Getenv("APPER_PROJECT_ID")
	if cfg.ApperProjectID == "" {
		missing = append(missing, "APPER_PROJECT_ID")
	}

	cfg.ApperPublicKey = os.Getenv("APPER_PUBLIC_KEY")
	if cfg.ApperPublicKey == "" {
		missing = append(missing, "APPER_PUBLIC_KEY")
	}

	cfg.AuthSecret = os.Getenv("AUTH_SECRET")
	if cfg.AuthSecret == "" {
		missing = append(missing, "AUTH_SECRET")
	}

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
