package app

import (
	"os"
	"strconv"
	"time"

	"github.com/stackleaf/todo/pkg/jwtx"
)

type Config struct {
	Issuer        string // Optional: issuer claim for tokens (default: todo-service)
	AccessSecret  string // Optional: HMAC secret for access tokens (generated if unset)
	RefreshSecret string // Optional: HMAC secret for refresh tokens (generated if unset)

	AccessTTL            time.Duration // Optional: access token lifetime (default: 15s)
	RefreshTTL           time.Duration // Optional: refresh token lifetime (default: 24h)
	DatabaseFile         string        // Optional: path to SQLite database file (default: ./todo.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:               getEnvOrDefault("TODO_ISSUER", "todo-service"),
		AccessSecret:         os.Getenv("TODO_ACCESS_SECRET"),
		RefreshSecret:        os.Getenv("TODO_REFRESH_SECRET"),
		AccessTTL:            getEnvDurationOrDefault("TODO_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:           getEnvDurationOrDefault("TODO_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:         getEnvOrDefault("TODO_DATABASE_FILE", "todo.db"),
		PepperFile:           getEnvOrDefault("TODO_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
