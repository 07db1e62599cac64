// Package config loads application settings from the environment with sane
// defaults for local development.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the service.
type Config struct {
	Port            string
	Env             string
	DatabaseDSN     string
	JWTSecret       string
	TokenTTL        time.Duration
	RabbitMQURL     string
	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimit       int // bytes
}

// Load reads configuration from environment variables via viper.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("JWT_EXPIRE_HOURS", 24)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("RATE_LIMIT_MAX", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_MINUTES", 15)
	viper.SetDefault("BODY_LIMIT_MB", 10)
	viper.AutomaticEnv()

	return &Config{
		Port:            viper.GetString("APP_PORT"),
		Env:             viper.GetString("APP_ENV"),
		DatabaseDSN:     viper.GetString("DATABASE_DSN"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		TokenTTL:        time.Duration(viper.GetInt("JWT_EXPIRE_HOURS")) * time.Hour,
		RabbitMQURL:     viper.GetString("RABBITMQ_URL"),
		RateLimitMax:    viper.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_MINUTES")) * time.Minute,
		BodyLimit:       viper.GetInt("BODY_LIMIT_MB") * 1024 * 1024,
	}
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
