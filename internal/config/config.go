package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultAddr      = ":8080"
	defaultJWTSecret = "change-me-jwt-secret"
)

type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string
	JWTSecret   string
}

// Load reads configuration from the environment. The JWT secret default
// is tolerated only outside production.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		Addr:        os.Getenv("ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "dev"
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in %s", cfg.AppEnv)
		}
		cfg.JWTSecret = defaultJWTSecret
	}
	return cfg, nil
}
