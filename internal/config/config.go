// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// CronSecret guards the recompute endpoints. Required.
	CronSecret string

	// IngestSecret, when set, guards event ingestion. Empty leaves
	// POST /events open (the historical behavior of the sensor path).
	IngestSecret string

	// DenoiseThreshold is the cancellation window for spurious event pairs.
	// Set DENOISE_THRESHOLD_MIN (fractional minutes) to override; defaults
	// to 3 minutes. This is the single canonical value for every code path.
	DenoiseThreshold time.Duration

	// BucketTZ is the IANA timezone whose calendar dates bucket events into
	// days. Defaults to "UTC". Changing it re-buckets history on the next
	// recompute; pick once and stay.
	BucketTZ string

	// DisplayTZ is the IANA timezone timesheet clock times are rendered in.
	// Defaults to "Europe/Berlin". Note that an event near local midnight
	// may display under a different date than its bucket when BucketTZ and
	// DisplayTZ differ.
	DisplayTZ string

	// RecomputeTimeout bounds a full-history rebuild. Defaults to 2m.
	RecomputeTimeout time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// describing the first malformed optional value.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		IngestSecret: os.Getenv("INGEST_SECRET"),
		BucketTZ:     getEnv("BUCKET_TZ", "UTC"),
		DisplayTZ:    getEnv("DISPLAY_TZ", "Europe/Berlin"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.CronSecret = os.Getenv("CRON_SECRET")
	if cfg.CronSecret == "" {
		missing = append(missing, "CRON_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	threshold, err := getMinutes("DENOISE_THRESHOLD_MIN", 3)
	if err != nil {
		return Config{}, err
	}
	cfg.DenoiseThreshold = threshold

	timeout, err := getDuration("RECOMPUTE_TIMEOUT", 2*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.RecomputeTimeout = timeout

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

// getMinutes parses the named variable as fractional minutes.
func getMinutes(key string, fallback float64) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback * float64(time.Minute)), nil
	}
	min, err := strconv.ParseFloat(raw, 64)
	if err != nil || min <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of minutes, got %q", key, raw)
	}
	return time.Duration(min * float64(time.Minute)), nil
}

// getDuration parses the named variable in Go duration syntax (e.g. "90s").
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
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
