package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the validated startup configuration. Everything auth-critical is
// resolved here once; nothing else in the codebase reads these env vars.
type Config struct {
	Env  string
	Port string

	JWTSecret   string
	AdminEmails []string

	RateLimitWhitelist []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads and validates the environment. A missing or weak JWT secret and
// an empty admin allow-list are hard startup failures, never silent fallbacks.
func Load() (*Config, error) {
	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be an integer, got %q", raw)
		}
		cfg.RedisDB = db
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for security, got %d. Generate one with: openssl rand -base64 32", len(cfg.JWTSecret))
	}

	cfg.AdminEmails = splitList(os.Getenv("ADMIN_EMAILS"))
	if len(cfg.AdminEmails) == 0 {
		return nil, errors.New("ADMIN_EMAILS not set; at least one admin email is required")
	}

	cfg.RateLimitWhitelist = splitList(os.Getenv("RATE_LIMIT_WHITELIST"))

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
