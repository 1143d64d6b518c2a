// Package config reads all application configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Storage backends. Empty DSNs select the in-memory stores.
	PostgresDSN   string
	ClickhouseDSN string

	// Ingestion
	SnapshotDir  string // directory of snapshot JSON files
	PairsURL     string // HTTP pairs endpoint
	FeedURL      string // websocket snapshot feed
	FetchTimeout time.Duration

	// Scheduler cron specs
	IngestSpec   string
	AnalysisSpec string

	// Analysis
	Workers int

	// Logging
	LogLevel  string
	LogFormat string // json, console
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		ClickhouseDSN: getEnv("CLICKHOUSE_DSN", ""),

		SnapshotDir:  getEnv("SNAPSHOT_DIR", "./snapshots"),
		PairsURL:     getEnv("PAIRS_URL", ""),
		FeedURL:      getEnv("FEED_URL", ""),
		FetchTimeout: getEnvAsDuration("FETCH_TIMEOUT", "30s"),

		IngestSpec:   getEnv("INGEST_CRON", "0 0 * * *"),
		AnalysisSpec: getEnv("ANALYSIS_CRON", "30 0 * * *"),

		Workers: getEnvAsInt("ANALYSIS_WORKERS", 8),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

// getEnv reads a string variable with a fallback.
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getEnvAsInt reads an integer variable with a fallback.
func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvAsDuration reads a duration variable with a fallback.
func getEnvAsDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}
