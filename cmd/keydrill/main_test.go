package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/model"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestResolvePracticeConfigDefaults(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolvePracticeConfig(cmd, config.FileConfig{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Keys != model.DefaultKeys || cfg.Mode != model.ModeFreeplay || cfg.Theme != "dark" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestResolvePracticeConfigFlagsOverrideFile(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--keys", "jkl", "--theme", "light"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	fileCfg := config.FileConfig{Practice: config.PracticeConfig{
		Keys:  strPtr("asdf"),
		Mode:  strPtr("custom"),
		Time:  intPtr(90),
		Theme: strPtr("dark"),
	}}
	cfg, err := resolvePracticeConfig(cmd, fileCfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Keys != "jkl" {
		t.Fatalf("flag must win over file: %q", cfg.Keys)
	}
	if cfg.Theme != "light" {
		t.Fatalf("flag must win over file: %q", cfg.Theme)
	}
	if cfg.Mode != (model.Mode{Kind: model.Custom, Seconds: 90}) {
		t.Fatalf("file mode must apply: %v", cfg.Mode)
	}
}

func TestResolvePracticeConfigRejectsBadInput(t *testing.T) {
	cases := []struct {
		args []string
		want error
	}{
		{[]string{"--keys", "  "}, model.ErrEmptyKeys},
		{[]string{"--mode", "custom", "--time", "0"}, model.ErrInvalidTime},
		{[]string{"--mode", "marathon"}, model.ErrUnknownMode},
		{[]string{"--theme", "neon"}, model.ErrUnknownTheme},
	}
	for _, tc := range cases {
		cmd := newRootCmd()
		if err := cmd.ParseFlags(tc.args); err != nil {
			t.Fatalf("parse flags: %v", err)
		}
		_, err := resolvePracticeConfig(cmd, config.FileConfig{})
		if !errors.Is(err, tc.want) {
			t.Fatalf("%v: expected %v, got %v", tc.args, tc.want, err)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := model.Config{MinWordLen: 3, MaxLength: 180, SyntheticSize: 170}
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.MaxLength = 0
	if err := validateConfig(cfg); err == nil || !strings.Contains(err.Error(), "--max-length") {
		t.Fatalf("expected max-length error, got %v", err)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template must be valid TOML: %v", err)
	}
	if cfg.Practice.Keys != nil {
		t.Fatalf("template values must be commented out")
	}
}
