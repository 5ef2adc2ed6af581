// Package config loads application configuration from environment
// variables, with optional .env file support for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Addr is the listen address (host:port).
	Addr string
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string
	// SessionJWTSecret verifies the bearer tokens issued by the external
	// authentication provider.
	SessionJWTSecret string
	// LogLevel selects the zap log level.
	LogLevel string
	// MigrationsPath is the directory holding SQL migrations.
	MigrationsPath string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:           getEnvOrDefault("ADDR", ":8080"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
	}

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.SessionJWTSecret = os.Getenv("SESSION_JWT_SECRET"); cfg.SessionJWTSecret == "" {
		return nil, fmt.Errorf("SESSION_JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or the default if
// not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
