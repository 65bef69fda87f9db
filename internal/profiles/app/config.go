package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer              string        // Issuer claim for session tokens (default: profiles)
	TokenTTL            time.Duration // Lifetime of session tokens (default: 15m)
	DatabaseFile        string        // Path to SQLite database file (default: ./profiles.db)
	PepperFile          string        // Path to the password hashing pepper (default: ./pepper)
	SigningKeyFile      string        // Path to the Ed25519 PKCS8 PEM signing key (default: ./signing.pem)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("PROFILES_ISSUER", "profiles"),
		TokenTTL:            getEnvDurationOrDefault("PROFILES_TOKEN_TTL", 15*time.Minute),
		DatabaseFile:        getEnvOrDefault("PROFILES_DATABASE_FILE", "profiles.db"),
		PepperFile:          getEnvOrDefault("PROFILES_PEPPER_FILE", "pepper"),
		SigningKeyFile:      getEnvOrDefault("PROFILES_SIGNING_KEY_FILE", "signing.pem"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

// getEnvDurationOrDefault accepts Go durations ("90s", "1h") or a bare
// integer number of minutes.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	return defaultValue
}
