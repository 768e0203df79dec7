package config

import (
	"strings"
	"time"

	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application. It is built once
// at startup and injected into constructors; nothing reads the environment
// after Load returns.
type Config struct {
	AppName            string
	Port               string
	AllowedOrigins     []string
	GoogleClientID     string
	GoogleClientSecret string
	SecretKey          string
	AccessTokenTTL     time.Duration
	LogLevel           string
	DatabaseURL        string
	DatabaseReadURL    string // Read replica URL for SELECT queries
	RedisURL           string
	Environment        string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		AppName:            getEnv("APP_NAME", "StudyBuddy API"),
		Port:               getEnv("PORT", "8080"),
		AllowedOrigins:     parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080,http://localhost:8081")),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		SecretKey:          getEnv("SECRET_KEY", "dev-secret-change-me"),
		AccessTokenTTL:     getDurationEnv("ACCESS_TOKEN_TTL", 7*24*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DatabaseReadURL:    getEnv("DATABASE_READ_URL", getEnv("DATABASE_URL", "")), // Falls back to write DB if not set
		RedisURL:           getEnv("REDIS_URL", ""),
		Environment:        getEnv("ENVIRONMENT", "production"),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
