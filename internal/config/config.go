// Package config loads service configuration from an optional TOML file with
// environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Port          string `toml:"port"`
	BaseURL       string `toml:"base_url"`
	BackendURL    string `toml:"backend_url"`
	SessionSecret string `toml:"session_secret"`

	MaxUploadBytes    int64 `toml:"max_upload_bytes"`
	MaxThumbnailBytes int64 `toml:"max_thumbnail_bytes"`

	RateLimitPerSecond float64 `toml:"rate_limit_per_second"`
	RateLimitBurst     int     `toml:"rate_limit_burst"`

	SessionCacheTTL time.Duration `toml:"-"`
	BrowseStateTTL  time.Duration `toml:"-"`
}

const (
	defaultPort           = "8080"
	defaultBaseURL        = "http://localhost:8080"
	DefaultMaxUploadBytes = 50 * 1024 * 1024
	DefaultMaxThumbBytes  = 5 * 1024 * 1024
)

// Load reads REELVIEW_CONFIG (when set and present) and applies env
// overrides. BACKEND_URL and SESSION_SECRET are required.
func Load() (Config, error) {
	cfg := Config{
		Port:               defaultPort,
		BaseURL:            defaultBaseURL,
		MaxUploadBytes:     DefaultMaxUploadBytes,
		MaxThumbnailBytes:  DefaultMaxThumbBytes,
		RateLimitPerSecond: 10,
		RateLimitBurst:     30,
		SessionCacheTTL:    5 * time.Minute,
		BrowseStateTTL:     30 * time.Minute,
	}

	if path := os.Getenv("REELVIEW_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)
	cfg.BackendURL = getEnv("BACKEND_URL", cfg.BackendURL)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.MaxThumbnailBytes = getEnvInt64("MAX_THUMBNAIL_BYTES", cfg.MaxThumbnailBytes)
	cfg.RateLimitPerSecond = getEnvFloat("RATE_LIMIT_PER_SECOND", cfg.RateLimitPerSecond)
	cfg.RateLimitBurst = int(getEnvInt64("RATE_LIMIT_BURST", int64(cfg.RateLimitBurst)))

	if cfg.BackendURL == "" {
		return Config{}, errors.New("BACKEND_URL is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
