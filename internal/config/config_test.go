package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if cfg.Practice.Keys != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigPractice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[practice]
keys = "fjdk"
mode = "custom"
time = 90
theme = "light"
synthetic = true

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Keys == nil || *cfg.Practice.Keys != "fjdk" {
		t.Fatalf("unexpected keys: %v", cfg.Practice.Keys)
	}
	if cfg.Practice.Time == nil || *cfg.Practice.Time != 90 {
		t.Fatalf("unexpected time: %v", cfg.Practice.Time)
	}
	if cfg.Practice.Synthetic == nil || !*cfg.Practice.Synthetic {
		t.Fatalf("expected synthetic = true")
	}
	if cfg.Practice.MaxLength != nil {
		t.Fatalf("unset values must stay nil")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsHonourXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "keydrill", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/state", "keydrill", "keydrill.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
