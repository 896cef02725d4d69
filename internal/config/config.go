package config

import (
	"os"
	"strings"

	"mmry/internal/cache"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	JWTIssuer    string
	JWTAudience  string
	UserCacheTTL string
	LogLevel     string
	Env          string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration and validates the TTL settings.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", ":8008"),
		DBPath:       getEnv("DB_PATH", "mmry.db"),
		JWTSecret:    getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		JWTIssuer:    getEnv("JWT_ISSUER", "mmry"),
		JWTAudience:  getEnv("JWT_AUDIENCE", "mmry-clients"),
		UserCacheTTL: getEnv("USER_CACHE_TTL", "5 minutes"),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Env:          strings.ToLower(getEnv("APP_ENV", "development")),
	}
	if !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	if _, err := cache.ParseTTL(cfg.UserCacheTTL); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is set to production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
