package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("TTL = %v, want 24h", cfg.Cache.TTL.Duration)
	}
	if cfg.Python != "" {
		t.Errorf("Python = %q, want empty (flag default applies)", cfg.Python)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `python = "3.8"
index_url = "https://mirror.internal/pypi"

[cache]
backend = "redis"
ttl = "1h"
redis_addr = "cache.internal:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Python != "3.8" {
		t.Errorf("Python = %q, want 3.8", cfg.Python)
	}
	if cfg.IndexURL != "https://mirror.internal/pypi" {
		t.Errorf("IndexURL = %q", cfg.IndexURL)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("TTL = %v, want 1h", cfg.Cache.TTL.Duration)
	}
	if cfg.Cache.RedisAddr != "cache.internal:6379" {
		t.Errorf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`python = "2.7"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Python != "2.7" {
		t.Errorf("Python = %q, want 2.7", cfg.Python)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Backend = %q, want default file", cfg.Cache.Backend)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`python = `), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", "reqcheck", "config.toml") {
		t.Errorf("path = %q", path)
	}
}
