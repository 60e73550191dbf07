package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/motour")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("RATING_RECONCILE_INTERVAL", "15m")
	t.Setenv("UPLOAD_MAX_BYTES", "not-a-number")

	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %q", cfg.Port)
	}
	if cfg.AdminJWTSecret != "secret" {
		t.Fatalf("expected admin secret to fall back to JWT_SECRET")
	}
	if cfg.RatingReconcileInterval != 15*time.Minute {
		t.Fatalf("expected 15m reconcile interval, got %s", cfg.RatingReconcileInterval)
	}
	if cfg.UploadMaxBytes != 5*1024*1024 {
		t.Fatalf("expected default upload limit, got %d", cfg.UploadMaxBytes)
	}
}

func TestLoadPanicsWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing DATABASE_URL")
		}
	}()
	Load()
}

func TestCORSOrigins(t *testing.T) {
	cfg := Config{AllowOrigins: []string{"https://app.example"}, AdminOrigin: "https://admin.example"}
	got := cfg.CORSOrigins()
	if len(got) != 2 || got[1] != "https://admin.example" {
		t.Fatalf("expected admin origin to be appended, got %v", got)
	}

	cfg.AllowOrigins = []string{"*"}
	if got := cfg.CORSOrigins(); len(got) != 1 {
		t.Fatalf("expected wildcard to absorb admin origin, got %v", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" a, ,b ")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected result %v", got)
	}
	if got := splitAndTrim(" , "); len(got) != 1 || got[0] != "*" {
		t.Fatalf("expected wildcard fallback, got %v", got)
	}
}
