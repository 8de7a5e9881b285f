package config_test

import (
	"testing"

	"libtrack/internal/platform/config"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != config.ThemeLight {
		t.Errorf("default theme = %q, want light", cfg.Theme)
	}
	if cfg.Assistant.Model == "" {
		t.Errorf("default assistant model must be set")
	}
	if cfg.DBPath == "" {
		t.Errorf("db path must be derived from data dir")
	}
}

func TestSaveThenLoadRoundTripsTheme(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Theme = config.ThemeDark
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := config.Load(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Theme != config.ThemeDark {
		t.Fatalf("theme = %q after reload, want dark", reloaded.Theme)
	}
}

func TestLoadNormalizesUnknownTheme(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Theme = "solarized"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := config.Load(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Theme != config.ThemeLight {
		t.Fatalf("unknown theme should normalize to light, got %q", reloaded.Theme)
	}
}
