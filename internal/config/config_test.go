package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.SettingsPath == "" {
		t.Error("expected a default settings path")
	}
	if cfg.CacheDBPath == "" {
		t.Error("expected a default cache db path")
	}
	if cfg.DefaultScriptURL != DefaultScriptURL {
		t.Errorf("expected built-in script URL, got %q", cfg.DefaultScriptURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("expected 15s default timeout, got %v", cfg.HTTPTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APERTURE_SETTINGS_PATH", "/tmp/s.json")
	t.Setenv("APERTURE_HTTP_TIMEOUT", "3s")
	t.Setenv("APERTURE_DEFAULT_SCRIPT_URL", "https://example.com/exec")

	cfg := Load()
	if cfg.SettingsPath != "/tmp/s.json" {
		t.Errorf("settings path override not applied: %q", cfg.SettingsPath)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("timeout override not applied: %v", cfg.HTTPTimeout)
	}
	if cfg.DefaultScriptURL != "https://example.com/exec" {
		t.Errorf("script URL override not applied: %q", cfg.DefaultScriptURL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) { c.CacheDBPath = t.TempDir() + "/cache.db" }, true},
		{"empty settings path", func(c *Config) { c.SettingsPath = "" }, false},
		{"empty cache path", func(c *Config) { c.CacheDBPath = "" }, false},
		{"bad url scheme", func(c *Config) { c.DefaultScriptURL = "ftp://example.com" }, false},
		{"timeout too small", func(c *Config) { c.HTTPTimeout = 10 * time.Millisecond }, false},
		{"timeout too large", func(c *Config) { c.HTTPTimeout = time.Hour }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			cfg.CacheDBPath = t.TempDir() + "/cache.db"
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
