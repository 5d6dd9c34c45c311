// Package config centralizes environment configuration for the service.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds every knob the service reads from the environment. The two
// store credentials are optional: when neither is set the cache runs
// in-process only for the lifetime of the process.
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string

	OddsAPIKey string

	// Durable cache backends, both optional. Postgres wins when both are set.
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string

	HTTPPort    string
	MetricsPort string

	CacheTTL      time.Duration
	SweepInterval time.Duration

	// WarmInterval enables background cache warming when positive.
	WarmInterval time.Duration

	// SportsFile optionally replaces the built-in sports catalog.
	SportsFile string

	// ValueBetThreshold is the American-odds cutoff for value-bet surfacing.
	ValueBetThreshold int

	// Requests allowed per client per minute on the public API.
	RateLimitPerMinute int
}

// Load reads configuration from the environment, applying defaults.
// ODDS_API_KEY is required; everything else has a workable default.
func Load() (Config, error) {
	cfg := Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: "tipster",

		OddsAPIKey: os.Getenv("ODDS_API_KEY"),

		PostgresDSN:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),

		CacheTTL:      parseDuration("CACHE_TTL", 15*time.Minute),
		SweepInterval: parseDuration("CACHE_SWEEP_INTERVAL", 10*time.Minute),
		WarmInterval:  parseDuration("WARM_INTERVAL", 0),

		SportsFile: os.Getenv("SPORTS_FILE"),

		ValueBetThreshold:  parseInt("VALUE_BET_THRESHOLD", -150),
		RateLimitPerMinute: parseInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.OddsAPIKey == "" {
		return Config{}, fmt.Errorf("ODDS_API_KEY environment variable is required")
	}
	if cfg.ValueBetThreshold >= 0 {
		return Config{}, fmt.Errorf("VALUE_BET_THRESHOLD must be a negative American price, got %d", cfg.ValueBetThreshold)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return def
	}
	return n
}
