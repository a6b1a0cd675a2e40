package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want 0.0.0.0", cfg.HTTP.Host)
	}
	if cfg.HTTP.Port != 7087 {
		t.Errorf("Port = %d, want 7087", cfg.HTTP.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Scoring.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Scoring.Workers)
	}
	if cfg.Upload.MaxBytes != 20<<20 {
		t.Errorf("MaxBytes = %d, want %d", cfg.Upload.MaxBytes, 20<<20)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SCORING_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.HTTP.Port)
	}
	if cfg.Scoring.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Scoring.Workers)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
