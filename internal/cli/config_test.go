package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.FallbackFamily != "Inter" || cfg.FallbackStyle != "Regular" {
		t.Errorf("fallback font = %s %s, want Inter Regular", cfg.FallbackFamily, cfg.FallbackStyle)
	}
	if cfg.YieldEvery != 50 {
		t.Errorf("YieldEvery = %d, want 50", cfg.YieldEvery)
	}
	if cfg.ServeAddr == "" {
		t.Error("ServeAddr is empty, want a default")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
fallback_family = "Roboto"
fallback_style = "Medium"
yield_every = 100
cache_dir = "/tmp/snaprestore-test"
redis_addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.FallbackFamily != "Roboto" || cfg.FallbackStyle != "Medium" {
		t.Errorf("fallback font = %s %s, want Roboto Medium", cfg.FallbackFamily, cfg.FallbackStyle)
	}
	if cfg.YieldEvery != 100 {
		t.Errorf("YieldEvery = %d, want 100", cfg.YieldEvery)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want localhost:6379", cfg.RedisAddr)
	}
	// Unset keys keep their defaults.
	if cfg.ServeAddr == "" {
		t.Error("ServeAddr lost its default")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() error = nil, want parse error")
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Config{CacheDir: "/custom/cache"}
	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != "/custom/cache" {
		t.Errorf("cacheDir() = %q, want /custom/cache", dir)
	}

	dir, err = cacheDir(Config{})
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if filepath.Base(dir) != "snaprestore" {
		t.Errorf("default cacheDir() = %q, want a snaprestore directory", dir)
	}
}
