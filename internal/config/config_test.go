package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "LOG_LEVEL", "CONTENT_DIR", "STORAGE_BACKEND",
		"REDIS_URL", "SQLITE_PATH", "SAVE_KEY", "SAVE_TIMEOUT", "RANDOM_SEED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SaveKey != "animus_mundi_save_v1" {
		t.Errorf("Expected default save key, got %q", cfg.SaveKey)
	}
	if cfg.StorageBackend != BackendSQLite {
		t.Errorf("Expected sqlite backend by default, got %q", cfg.StorageBackend)
	}
	if cfg.SaveTimeout != 2*time.Second {
		t.Errorf("Expected 2s save timeout, got %s", cfg.SaveTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Expected info level, got %v", cfg.LogLevel)
	}
	if cfg.RandomSeed != 0 {
		t.Errorf("Expected no seed, got %d", cfg.RandomSeed)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("SAVE_KEY", "slot_two")
	t.Setenv("SAVE_TIMEOUT", "500ms")
	t.Setenv("RANDOM_SEED", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Environment != "production" || cfg.LogLevel != slog.LevelWarn {
		t.Errorf("Unexpected environment/level: %q %v", cfg.Environment, cfg.LogLevel)
	}
	if cfg.StorageBackend != BackendRedis || cfg.RedisURL != "redis://cache:6379/1" {
		t.Errorf("Unexpected backend: %q %q", cfg.StorageBackend, cfg.RedisURL)
	}
	if cfg.SaveKey != "slot_two" || cfg.SaveTimeout != 500*time.Millisecond || cfg.RandomSeed != 42 {
		t.Errorf("Unexpected save settings: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "STORAGE_BACKEND", "postgres"},
		{"unparseable timeout", "SAVE_TIMEOUT", "soon"},
		{"zero timeout", "SAVE_TIMEOUT", "0s"},
		{"bad seed", "RANDOM_SEED", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
