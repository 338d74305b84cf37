package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// pointAtMissingFile keeps Load away from any real user config.
func pointAtMissingFile(t *testing.T) {
	t.Helper()
	t.Setenv("FORMFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
}

func TestLoad_Defaults(t *testing.T) {
	pointAtMissingFile(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Demo.ValidateOnChange {
		t.Error("demo.validate_on_change should default to true")
	}
	if !cfg.Demo.ValidateOnBlur {
		t.Error("demo.validate_on_blur should default to true")
	}
	if cfg.Demo.AllowSectionSkipping {
		t.Error("demo.allow_section_skipping should default to false")
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("serve.addr = %q, want %q", cfg.Serve.Addr, ":8080")
	}
	if cfg.Serve.MaxSize != 10<<20 {
		t.Errorf("serve.max_size = %d, want %d", cfg.Serve.MaxSize, int64(10<<20))
	}
	if cfg.Serve.TTL != time.Hour {
		t.Errorf("serve.ttl = %v, want %v", cfg.Serve.TTL, time.Hour)
	}
	if cfg.Serve.UploadDir == "" {
		t.Error("serve.upload_dir should have a default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "info")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`
[demo]
validate_on_change = false
allow_section_skipping = true

[serve]
addr = ":9090"
max_size = 1048576
ttl = "30m"

[log]
level = "debug"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("FORMFLOW_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Demo.ValidateOnChange {
		t.Error("demo.validate_on_change should be false from file")
	}
	if !cfg.Demo.AllowSectionSkipping {
		t.Error("demo.allow_section_skipping should be true from file")
	}
	if !cfg.Demo.ValidateOnBlur {
		t.Error("demo.validate_on_blur should keep its default")
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("serve.addr = %q, want %q", cfg.Serve.Addr, ":9090")
	}
	if cfg.Serve.MaxSize != 1<<20 {
		t.Errorf("serve.max_size = %d, want %d", cfg.Serve.MaxSize, int64(1<<20))
	}
	if cfg.Serve.TTL != 30*time.Minute {
		t.Errorf("serve.ttl = %v, want %v", cfg.Serve.TTL, 30*time.Minute)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[serve]\naddr = \":9090\"\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("FORMFLOW_CONFIG", path)
	t.Setenv("FORMFLOW_SERVE_ADDR", ":7070")
	t.Setenv("FORMFLOW_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Serve.Addr != ":7070" {
		t.Errorf("serve.addr = %q, want env override %q", cfg.Serve.Addr, ":7070")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want env override %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is not valid toml [[["), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("FORMFLOW_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Unreadable files fall back to defaults rather than failing the CLI.
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("serve.addr = %q, want default %q", cfg.Serve.Addr, ":8080")
	}
}
