package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, time.Second, cfg.Window)
	assert.Equal(t, "user_route", cfg.KeyStrategy)
}

func TestLoadRateLimitConfig_ClampsInvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_LIMIT", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "0s")

	cfg := LoadRateLimitConfig()

	assert.Equal(t, 1, cfg.Limit)
	assert.Equal(t, time.Second, cfg.Window)
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  bool
		want bool
	}{
		{"unset uses default", "", true, true},
		{"yes", "yes", false, true},
		{"off", "off", true, false},
		{"garbage uses default", "maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_BOOL", tt.raw)
			assert.Equal(t, tt.want, envBool("TEST_ENV_BOOL", tt.def))
		})
	}
}

func TestEnvIntAndDur(t *testing.T) {
	t.Setenv("TEST_ENV_INT", "")
	t.Setenv("TEST_ENV_DUR", "")
	assert.Equal(t, 7, envInt("TEST_ENV_INT", 7))
	assert.Equal(t, time.Second, envDur("TEST_ENV_DUR", time.Second))

	t.Setenv("TEST_ENV_INT", "12")
	t.Setenv("TEST_ENV_DUR", "250ms")
	assert.Equal(t, 12, envInt("TEST_ENV_INT", 7))
	assert.Equal(t, 250*time.Millisecond, envDur("TEST_ENV_DUR", time.Second))

	t.Setenv("TEST_ENV_INT", "many")
	t.Setenv("TEST_ENV_DUR", "soon")
	assert.Equal(t, 7, envInt("TEST_ENV_INT", 7))
	assert.Equal(t, time.Second, envDur("TEST_ENV_DUR", time.Second))
}

func TestLoadRedisConfig_HostPortWins(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")

	cfg := LoadRedisConfig()

	assert.Equal(t, "redis:6380", cfg.Addr)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")

	cfg := LoadCacheConfig()

	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}
