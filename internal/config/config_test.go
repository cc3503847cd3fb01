package config

import (
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "LISTEN_ADDR", "APP_ENV", "GIN_MODE", "LOG_LEVEL", "STORAGE_DRIVER",
	"DATABASE_PATH", "DATABASE_URL", "REDIS_URL", "CACHE_TTL", "SEED_DEMO_DATA",
	"SESSION_SECRET", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH", "ADMIN_ENFORCE",
	"CORS_ORIGINS", "UPLOAD_DIR", "UPLOAD_URL_PATH", "TRASH_RETENTION",
	"TRASH_JANITOR_INTERVAL", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.StorageDriver != StorageMemory || !cfg.SeedDemoData {
		t.Fatalf("expected seeded memory storage by default, got %q seed=%v", cfg.StorageDriver, cfg.SeedDemoData)
	}
	if cfg.DatabasePath != "portfolio.db" {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath)
	}
	if cfg.CacheTTL != time.Minute || cfg.TrashRetention != 720*time.Hour {
		t.Fatalf("unexpected durations ttl=%s retention=%s", cfg.CacheTTL, cfg.TrashRetention)
	}
	if cfg.AdminEnforce {
		t.Fatalf("admin enforcement must be opt-in")
	}
	if cfg.UploadURLPath != "/static/uploads" {
		t.Fatalf("unexpected upload url path %q", cfg.UploadURLPath)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", " SQLite ")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("ADMIN_ENFORCE", "true")
	t.Setenv("ADMIN_PASSWORD", "pw")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected listen addr to follow PORT, got %q", cfg.ListenAddr)
	}
	if cfg.StorageDriver != StorageSQLite || cfg.SeedDemoData {
		t.Fatalf("expected unseeded sqlite, got %q seed=%v", cfg.StorageDriver, cfg.SeedDemoData)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache ttl %s", cfg.CacheTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if !cfg.AdminEnforce {
		t.Fatalf("expected admin enforcement")
	}
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":       {"STORAGE_DRIVER": "mongo"},
		"postgres without url": {"STORAGE_DRIVER": "postgres"},
		"bad duration":         {"CACHE_TTL": "soon"},
		"bad bool":             {"SEED_DEMO_DATA": "maybe"},
		"enforce without pw":   {"ADMIN_ENFORCE": "1"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range env {
				t.Setenv(key, value)
			}
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}
