package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AdminSecret  string   // Required: HS256 secret for admin bearer tokens
	Issuer       string   // Optional: issuer claim for admin tokens and TOTP labels
	OwnerEmails  []string // Optional: emails seeded into the owner allowlist on startup
	DatabaseFile string   // Optional: path to SQLite database file (default: ./gatehouse.db)
	PepperFile   string   // Optional: path to file containing pepper for password hashing (default: ./pepper)

	SessionTTL           time.Duration // Session lifetime (default: 24h)
	ResetTokenTTL        time.Duration // Password reset token lifetime (default: 1h)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		AdminSecret:          os.Getenv("ADMIN_JWT_SECRET"),
		Issuer:               getEnvOrDefault("AUTH_ISSUER", "gatehouse"),
		OwnerEmails:          splitList(os.Getenv("OWNER_EMAIL_ALLOWLIST")),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "gatehouse.db"),
		PepperFile:           getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		ResetTokenTTL:        getEnvDurationOrDefault("RESET_TOKEN_TTL", time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
