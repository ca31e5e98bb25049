// Package config provides configuration management for the finance tracker.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Port           string
	DBPath         string
	LogLevel       slog.Level
	AuthToken      string
	CategoriesPath string
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available. You can
// optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	level, err := parseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           getEnvOrDefault("PORT", "5000"),
		DBPath:         getEnvOrDefault("DB_PATH", "./data/fintrack.db"),
		LogLevel:       level,
		AuthToken:      os.Getenv("AUTH_TOKEN"),
		CategoriesPath: os.Getenv("CATEGORIES_PATH"),
	}, nil
}

// parseLevel maps a LOG_LEVEL value to a slog level.
func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL: %s", value)
}

// getEnvOrDefault returns the value of the environment variable or a default
// value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
