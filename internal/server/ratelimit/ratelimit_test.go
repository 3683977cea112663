package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_BurstThenBlocked(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/tailor", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		},
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/api/tailor", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/api/tailor", "POST")
	assert.True(t, allowed)

	allowed, info := limiter.Allow("1.2.3.4", "/api/tailor", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/tailor", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/api/tailor", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/api/tailor", "POST")
	assert.False(t, allowed)

	// A different client has its own bucket.
	allowed, _ = limiter.Allow("5.6.7.8", "/api/tailor", "POST")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/api/tailor", "POST")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint_HealthUnlimited(t *testing.T) {
	ec := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, ec)
	assert.Equal(t, 0, ec.Limit)
}

func TestMatchEndpoint_ExactMatch(t *testing.T) {
	configs := DefaultEndpointConfigs()

	ec := MatchEndpoint("/api/tailor", "POST", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 20, ec.Limit)

	assert.Nil(t, MatchEndpoint("/api/tailor", "GET", configs))
	assert.Nil(t, MatchEndpoint("/api/unknown", "POST", configs))
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
}
