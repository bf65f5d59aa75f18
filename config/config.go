// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the server needs. It is built once at startup
// and injected; no package reads ambient environment state after that.
type Config struct {
	Port            string        `mapstructure:"PORT"`
	MongoURI        string        `mapstructure:"MONGODB_URI"`
	DBName          string        `mapstructure:"DB_NAME"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	TokenTTL        time.Duration `mapstructure:"TOKEN_TTL"`
	Timezone        string        `mapstructure:"TIMEZONE"`
	CloudinaryURL   string        `mapstructure:"CLOUDINARY_URL"`
	ImageFolder     string        `mapstructure:"IMAGE_FOLDER"`
	AllowedOrigins  []string      `mapstructure:"ALLOWED_ORIGINS"`
	RateLimit       int           `mapstructure:"RATE_LIMIT"`
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	location *time.Location
}

// Load reads configuration from environment variables with development
// defaults for everything except the JWT secret.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MONGODB_URI", "mongodb://127.0.0.1:27017")
	viper.SetDefault("DB_NAME", "mydiary")
	viper.SetDefault("TOKEN_TTL", "72h")
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("IMAGE_FOLDER", "Diary/post_images")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	viper.SetDefault("RATE_LIMIT", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	// Explicit binds: AutomaticEnv alone does not surface env vars through
	// Unmarshal for keys that were never set as defaults.
	if err := viper.BindEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := viper.BindEnv("CLOUDINARY_URL"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return &cfg, nil
}

// Location returns the time zone used for calendar-day filtering.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
