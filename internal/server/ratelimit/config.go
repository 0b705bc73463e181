package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// Config holds limiter settings
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Rules           []Rule
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-endpoint limits. Every generation endpoint
// triggers at least one model call; job alerts trigger up to ten.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/jobs/alerts", Limit: 6, Window: time.Hour, Burst: 2},
		{Prefix: "/coverletter", Limit: 30, Window: time.Hour, Burst: 5},
		{Prefix: "/interview", Limit: 30, Window: time.Hour, Burst: 5},
		{Prefix: "/portfolio", Limit: 30, Window: time.Hour, Burst: 5},
		{Prefix: "/resume", Limit: 60, Window: time.Hour, Burst: 10},
	}
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
