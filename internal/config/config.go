package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultScriptURL is the built-in deployment of the ledger web app.
// It is only a starting point; the effective endpoint lives in user settings.
const DefaultScriptURL = "https://script.google.com/a/macros/aperture.day/s/AKfycby_AJf57V8_Cbjuq7Po6u9QDbQjnsDTQXlQPOayDr59zZiNb8hKsRv5_nDKBFLWRV-C/exec"

type Config struct {
	// Local state
	SettingsPath string
	CacheDBPath  string

	// Gateway
	DefaultScriptURL string
	HTTPTimeout      time.Duration

	// Logging
	LogLevel slog.Level
}

func Load() *Config {
	base := stateDir()

	cfg := &Config{
		SettingsPath:     getEnv("APERTURE_SETTINGS_PATH", filepath.Join(base, "aperture_settings.json")),
		CacheDBPath:      getEnv("APERTURE_CACHE_DB_PATH", filepath.Join(base, "cache.db")),
		DefaultScriptURL: getEnv("APERTURE_DEFAULT_SCRIPT_URL", DefaultScriptURL),
		HTTPTimeout:      getEnvDuration("APERTURE_HTTP_TIMEOUT", 15*time.Second),
		LogLevel:         getEnvLevel("APERTURE_LOG_LEVEL", slog.LevelInfo),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.SettingsPath == "" {
		errors = append(errors, "settings path cannot be empty")
	}

	if c.CacheDBPath == "" {
		errors = append(errors, "cache database path cannot be empty")
	} else {
		dir := filepath.Dir(c.CacheDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create cache directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DefaultScriptURL != "" {
		if parsed, err := url.Parse(c.DefaultScriptURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid default script URL '%s': %v", c.DefaultScriptURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid default script URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// stateDir returns the per-user directory for settings and cache,
// falling back to the working directory when the home dir is unknown.
func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".aperture")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvLevel(key string, defaultValue slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv(key)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return defaultValue
	}
}
