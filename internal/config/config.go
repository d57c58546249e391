package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	DatabaseURL string
	RedisAddr   string

	// Text-generation planner.
	GeminiAPIKey string
	GeminiModel  string

	// Distance/time provider.
	MapsAPIKey string

	// Fleet seeding (dbtool).
	SeedPath string
}

// Load reads configuration from the environment, after sourcing a local
// .env file if present. Missing credentials are a startup failure: planning
// must never begin without both providers configured.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  Get("APP_ENV", "development"),
		Port:         Get("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    Get("REDIS_ADDR", ""),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  Get("GEMINI_MODEL", "gemini-1.5-flash"),
		MapsAPIKey:   os.Getenv("MAPS_API_KEY"),
		SeedPath:     Get("SEED_PATH", "data/seeds/vehicles.json"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.MapsAPIKey == "" {
		return nil, fmt.Errorf("MAPS_API_KEY is required")
	}

	return cfg, nil
}

// Get returns the named env var or a fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns the named env var parsed as an int, or a fallback when the
// variable is unset or malformed.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
