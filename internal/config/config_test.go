package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.APIBaseURL == "" || cfg.HTTPAddr == "" || cfg.TokenPath == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend:9000/api")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg := FromEnv()
	if cfg.APIBaseURL != "http://backend:9000/api" {
		t.Fatalf("unexpected base url: %s", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.RequestTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestEnvDurationIgnoresGarbage(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "soon")
	cfg := FromEnv()
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("garbage duration should fall back to default, got %s", cfg.RequestTimeout)
	}
}
