package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the immutable process configuration. Built once at startup,
// passed by value into the components that need it.
type Config struct {
	HTTPAddr     string
	PGDSN        string
	AuthSecret   string
	JWTAlgorithm string
	TokenTTL     time.Duration
}

// Load reads configuration from TIERGATE_* environment variables. A missing
// signing secret or a non-positive TTL is a startup error, never a
// per-request one.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:     getenv("TIERGATE_HTTP_ADDR", ":8080"),
		PGDSN:        os.Getenv("TIERGATE_PG_DSN"),
		AuthSecret:   os.Getenv("TIERGATE_AUTH_SECRET"),
		JWTAlgorithm: getenv("TIERGATE_JWT_ALG", "HS256"),
	}

	if cfg.AuthSecret == "" {
		return Config{}, errors.New("TIERGATE_AUTH_SECRET is required")
	}

	raw := getenv("TIERGATE_TOKEN_TTL_MINUTES", "30")
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse TIERGATE_TOKEN_TTL_MINUTES: %w", err)
	}
	if minutes <= 0 {
		return Config{}, fmt.Errorf("TIERGATE_TOKEN_TTL_MINUTES must be positive, got %d", minutes)
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
