package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		CleanupInterval: time.Minute,
		Rules: []Rule{
			{Prefix: "/jobs/alerts", Limit: 6, Window: time.Hour, Burst: 2},
			{Prefix: "/resume", Limit: 60, Window: time.Hour, Burst: 10},
		},
	}
}

func TestLimiter_BurstThenDenied(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	// Burst of 2 allowed
	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/jobs/alerts")
		require.True(t, allowed, "request %d should be allowed", i)
	}

	allowed, info := limiter.Allow("1.2.3.4", "/jobs/alerts")
	assert.False(t, allowed)
	assert.Equal(t, 6, info.Limit)
	assert.GreaterOrEqual(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.1.1.1", "/jobs/alerts")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("1.1.1.1", "/jobs/alerts")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("2.2.2.2", "/jobs/alerts")
	assert.True(t, allowed)
}

func TestLimiter_PathsIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		_, _ = limiter.Allow("1.1.1.1", "/jobs/alerts")
	}
	allowed, _ := limiter.Allow("1.1.1.1", "/jobs/alerts")
	require.False(t, allowed)

	// Different rule, different bucket
	allowed, _ = limiter.Allow("1.1.1.1", "/resume/score")
	assert.True(t, allowed)
}

func TestLimiter_LongestPrefixWins(t *testing.T) {
	cfg := testConfig()
	cfg.Rules = append(cfg.Rules, Rule{Prefix: "/resume/score", Limit: 5, Window: time.Hour, Burst: 1})
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, info := limiter.Allow("1.1.1.1", "/resume/score")
	require.True(t, allowed)
	assert.Equal(t, 5, info.Limit)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.1.1.1", "/jobs/alerts")
		require.True(t, allowed)
	}
}

func TestLimiter_DefaultRuleForUnknownPath(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	allowed, info := limiter.Allow("1.1.1.1", "/health")
	require.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DefaultLimit)
	assert.NotEmpty(t, cfg.Rules)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
