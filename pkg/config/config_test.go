package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %q, want console", cfg.LogFormat)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.FetchTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ANALYSIS_WORKERS", "2")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost/db")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v, want 5s", cfg.FetchTimeout)
	}
	if cfg.PostgresDSN != "postgres://u:p@localhost/db" {
		t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("ANALYSIS_WORKERS", "many")
	t.Setenv("FETCH_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want fallback 8", cfg.Workers)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want fallback 30s", cfg.FetchTimeout)
	}
}
