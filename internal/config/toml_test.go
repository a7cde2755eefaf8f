package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config should not be an error, got %v", err)
	}
	if cfg.Server.URL != nil || cfg.UI.Lang != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "http://farm.example:8080"
timeout-ms = 2500

[ui]
lang = "az"
dark-mode = true
page = "dashboard"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.URL == nil || *cfg.Server.URL != "http://farm.example:8080" {
		t.Fatalf("unexpected server url: %v", cfg.Server.URL)
	}
	if cfg.Server.TimeoutMs == nil || *cfg.Server.TimeoutMs != 2500 {
		t.Fatalf("unexpected timeout: %v", cfg.Server.TimeoutMs)
	}
	if cfg.UI.Lang == nil || *cfg.UI.Lang != "az" {
		t.Fatalf("unexpected lang: %v", cfg.UI.Lang)
	}
	if cfg.UI.DarkMode == nil || !*cfg.UI.DarkMode {
		t.Fatalf("unexpected dark mode: %v", cfg.UI.DarkMode)
	}
	if cfg.UI.Page == nil || *cfg.UI.Page != "dashboard" {
		t.Fatalf("unexpected page: %v", cfg.UI.Page)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
