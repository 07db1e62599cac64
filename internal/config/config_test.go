package config_test

import (
	"testing"
	"time"

	"inventori/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 10*1024*1024, cfg.BodyLimit)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_EXPIRE_HOURS", "2")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
