package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"konsert-backend/pkg/lang"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Cache
	EnableCache bool
	RedisURL    string
	CacheTTL    time.Duration

	// Server
	Port        string
	Environment string
	LogLevel    string

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Studio
	StudioAPIToken string

	// Draft mode
	DraftModeSecret     string
	DraftModeSigningKey string
	DraftModeTTL        time.Duration

	// Features
	EnableMetrics bool

	// Site Meta
	SiteName        string
	SiteDescription string
	SiteURL         string
	SiteLanguage    string
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "konsert"),
		DBPassword: getEnv("DB_PASSWORD", "konsert"),
		DBName:     getEnv("DB_NAME", "konsert"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Cache
		EnableCache: getEnvAsBool("ENABLE_CACHE", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", time.Hour),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		// Studio
		StudioAPIToken: getEnv("STUDIO_API_TOKEN", ""),

		// Draft mode
		DraftModeSecret:     getEnv("DRAFT_MODE_SECRET", ""),
		DraftModeSigningKey: getEnv("DRAFT_MODE_SIGNING_KEY", ""),
		DraftModeTTL:        getEnvAsDuration("DRAFT_MODE_TTL", 8*time.Hour),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site Meta
		SiteName:        getEnv("SITE_NAME", "Konsert"),
		SiteDescription: getEnv("SITE_DESCRIPTION", "Artists, venues and concerts."),
		SiteURL:         getEnv("SITE_URL", "http://localhost:8080"),
		SiteLanguage:    lang.OrDefault(getEnv("SITE_LANGUAGE", lang.Default)),
	}

	// The signing key falls back to the preview secret.
	if c.DraftModeSigningKey == "" {
		c.DraftModeSigningKey = c.DraftModeSecret
	}

	if c.LogLevel == "" {
		if c.IsProduction() {
			c.LogLevel = "info"
		} else {
			c.LogLevel = "debug"
		}
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DraftModeEnabled reports whether the preview endpoints can be used.
func (c *Config) DraftModeEnabled() bool {
	return strings.TrimSpace(c.DraftModeSecret) != ""
}
