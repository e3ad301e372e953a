package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr   string
	BaseURL      string
	CORSOrigins  string // Comma-separated allowed origins
	RateLimitMax int    // Requests per minute per IP

	// Storage
	DatabaseURL string // Empty disables lookup recording
	RedisURL    string // Empty keeps rate-limit state in memory

	// Content
	CatalogFile string // YAML catalog; empty uses the embedded default

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json

	// Alert forwarding
	DiscordWebhookURL   string
	DiscordUsername     string
	IngestToken         string
	LogInfoSampleRate   float64
	LogDedupeWindow     time.Duration
	DedupeSweepInterval time.Duration

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Grimoire"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:3000"),
		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		CatalogFile: getEnv("CATALOG_FILE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DiscordWebhookURL:   getEnv("DISCORD_WEBHOOK_URL", ""),
		DiscordUsername:     getEnv("DISCORD_USERNAME", "grimoire-logs"),
		IngestToken:         getEnv("INGEST_TOKEN", ""),
		LogInfoSampleRate:   getEnvFloat("LOG_INFO_SAMPLE_RATE", 0.1),
		LogDedupeWindow:     getEnvDuration("LOG_DEDUPE_WINDOW", 60*time.Second),
		DedupeSweepInterval: getEnvDuration("DEDUPE_SWEEP_INTERVAL", 5*time.Minute),

		SiteTitle:   getEnv("SITE_TITLE", "Grimoire"),
		SiteTagline: getEnv("SITE_TAGLINE", "Signs, cards and crystals, explained"),
		SiteFooter:  getEnv("SITE_FOOTER", "Grimoire - an astrology knowledge base"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsDatabaseEnabled returns true if a database is configured.
func (c *Config) IsDatabaseEnabled() bool {
	return c.DatabaseURL != ""
}

// IsAlertsEnabled returns true if a Discord webhook is configured.
func (c *Config) IsAlertsEnabled() bool {
	return c.DiscordWebhookURL != ""
}
