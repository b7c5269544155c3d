package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_TYPE", "JWT_EXPIRATION", "RATE_LIMIT", "DEBUG", "ADMIN_EMAIL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.JWTExpiration != 24*time.Hour {
		t.Errorf("JWTExpiration = %v, want 24h", cfg.JWTExpiration)
	}
	if cfg.AdminEmail != "yoga@studio.com" {
		t.Errorf("AdminEmail = %q", cfg.AdminEmail)
	}
	if cfg.RateLimit != 10 {
		t.Errorf("RateLimit = %d, want 10", cfg.RateLimit)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(*Config) bool
	}{
		{"port", "PORT", "9000", func(c *Config) bool { return c.ServerPort == "9000" }},
		{"duration string", "JWT_EXPIRATION", "90m", func(c *Config) bool { return c.JWTExpiration == 90*time.Minute }},
		{"duration millis", "JWT_EXPIRATION", "86400000", func(c *Config) bool { return c.JWTExpiration == 24*time.Hour }},
		{"bad duration falls back", "JWT_EXPIRATION", "soon", func(c *Config) bool { return c.JWTExpiration == 24*time.Hour }},
		{"rate limit", "RATE_LIMIT", "3", func(c *Config) bool { return c.RateLimit == 3 }},
		{"negative rate limit falls back", "RATE_LIMIT", "-1", func(c *Config) bool { return c.RateLimit == 10 }},
		{"debug", "DEBUG", "true", func(c *Config) bool { return c.Debug }},
		{"nats", "NATS_URL", "nats://localhost:4222", func(c *Config) bool { return c.NATSURL == "nats://localhost:4222" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if cfg := Load(); !tt.check(cfg) {
				t.Errorf("%s=%q not applied: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}
