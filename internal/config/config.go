package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	JWTSecret     string
	JWTExpiration time.Duration

	AdminEmail    string
	AdminPassword string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	NATSURL string

	// RateLimit is the number of auth attempts allowed per IP per minute
	RateLimit int
	Debug     bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./yogastudio.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiration:  getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		AdminEmail:     getEnv("ADMIN_EMAIL", "yoga@studio.com"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "test!1234"),
		AWSRegion:      getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "Yoga Studio"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:4200"),
		NATSURL:        getEnv("NATS_URL", ""),
		RateLimit:      getEnvInt("RATE_LIMIT", 10),
		Debug:          getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90m") or plain milliseconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
