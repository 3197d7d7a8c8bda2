package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TIERGATE_AUTH_SECRET", "test-secret")
	t.Setenv("TIERGATE_HTTP_ADDR", "")
	t.Setenv("TIERGATE_JWT_ALG", "")
	t.Setenv("TIERGATE_TOKEN_TTL_MINUTES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.JWTAlgorithm != "HS256" {
		t.Fatalf("unexpected algorithm: %s", cfg.JWTAlgorithm)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl: %v", cfg.TokenTTL)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("TIERGATE_AUTH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing secret")
	}
}

func TestLoadBadTTL(t *testing.T) {
	t.Setenv("TIERGATE_AUTH_SECRET", "test-secret")

	t.Setenv("TIERGATE_TOKEN_TTL_MINUTES", "zero")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unparseable ttl")
	}

	t.Setenv("TIERGATE_TOKEN_TTL_MINUTES", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative ttl")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TIERGATE_AUTH_SECRET", "test-secret")
	t.Setenv("TIERGATE_HTTP_ADDR", ":9090")
	t.Setenv("TIERGATE_JWT_ALG", "HS512")
	t.Setenv("TIERGATE_TOKEN_TTL_MINUTES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.JWTAlgorithm != "HS512" || cfg.TokenTTL != 5*time.Minute {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
