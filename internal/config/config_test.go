// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d", cfg.Server.TimeoutSecs)
	}
}

func TestLoadTOMLFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
base_url = "https://todo.example.com"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}

	if cfg.Server.BaseURL != "https://todo.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("missing timeout should default to 30, got %d", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("missing theme should default to dark, got %q", cfg.UI.Theme)
	}
}

func TestLoadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	want := Default()
	want.Server.BaseURL = "http://127.0.0.1:9000"
	want.UI.CompactMode = true

	data := []byte(`{
  "version": "1.0.0",
  "server": {"base_url": "http://127.0.0.1:9000", "timeout_secs": 30},
  "ui": {"theme": "dark", "compact_mode": true, "markdown": true, "show_tool_calls": true, "default_filter": "all"},
  "log": {"enabled": false, "path": ""}
}`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	if err := LoadJSON(cfg, path); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if cfg.Server.BaseURL != want.Server.BaseURL {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if !cfg.UI.CompactMode {
		t.Error("CompactMode should be true")
	}
}

func TestLoadFixesInsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("permissions = %o, want 0600", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "bad scheme",
			mutate: func(c *Config) { c.Server.BaseURL = "ftp://example.com" },
			field:  "server.base_url",
		},
		{
			name:   "timeout too large",
			mutate: func(c *Config) { c.Server.TimeoutSecs = 500 },
			field:  "server.timeout_secs",
		},
		{
			name:   "unknown theme",
			mutate: func(c *Config) { c.UI.Theme = "solarized" },
			field:  "ui.theme",
		},
		{
			name:   "unknown filter",
			mutate: func(c *Config) { c.UI.DefaultFilter = "urgent" },
			field:  "ui.default_filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention field %s", err, tt.field)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TASKDECK_SERVER_URL", "https://override.example.com")
	t.Setenv("TASKDECK_TIMEOUT_SECS", "60")
	t.Setenv("TASKDECK_THEME", "light")
	t.Setenv("TASKDECK_LOG", "true")
	t.Setenv("TASKDECK_LOG_PATH", "/tmp/taskdeck-test.log")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.BaseURL != "https://override.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if !cfg.Log.Enabled {
		t.Error("Log.Enabled should be true")
	}
	if cfg.Log.Path != "/tmp/taskdeck-test.log" {
		t.Errorf("Log.Path = %q", cfg.Log.Path)
	}
}

func TestEnvOverrideIgnoresBadTimeout(t *testing.T) {
	t.Setenv("TASKDECK_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want default 30", cfg.Server.TimeoutSecs)
	}
}

func TestSaveTOMLCreatesSecureFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	path := filepath.Join(home, ".taskdeck", "config.toml")
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("permissions = %o, want 0600", got)
	}

	loaded := &Config{}
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML after save: %v", err)
	}
	if loaded.Server.BaseURL != cfg.Server.BaseURL {
		t.Errorf("round trip BaseURL = %q", loaded.Server.BaseURL)
	}
}

func TestLoadFromPathValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
base_url = "ftp://bad.example.com"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected a validation error for ftp scheme")
	}
}
