// Package settings persists the user preferences record. The record is
// loaded once at startup and rewritten whole on every change; corrupt
// or missing storage degrades to defaults, never to an error.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aperture/internal/log"
)

// UserSettings is the locally persisted preference record. An empty
// username means the app is unconfigured and must show the settings
// screen.
type UserSettings struct {
	ScriptURL string `json:"scriptUrl"`
	Username  string `json:"username"`
}

// Configured reports whether a username has been set.
func (s UserSettings) Configured() bool {
	return strings.TrimSpace(s.Username) != ""
}

// Store reads and writes the settings file.
type Store struct {
	path       string
	defaultURL string
	logger     *log.Logger
}

func NewStore(path, defaultURL string, logger *log.Logger) *Store {
	return &Store{
		path:       path,
		defaultURL: defaultURL,
		logger:     logger.WithComponent(log.ComponentSettings),
	}
}

// Defaults is the record used when nothing valid is on disk.
func (s *Store) Defaults() UserSettings {
	return UserSettings{ScriptURL: s.defaultURL, Username: ""}
}

// Load reads the persisted record, falling back to defaults when the
// file is missing or malformed.
func (s *Store) Load() UserSettings {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Settings file unreadable, using defaults",
				"path", s.path, log.FieldError, err)
		}
		return s.Defaults()
	}

	var loaded UserSettings
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.logger.Warn("Settings file corrupt, using defaults",
			"path", s.path, log.FieldError, err)
		return s.Defaults()
	}
	if loaded.ScriptURL == "" {
		loaded.ScriptURL = s.defaultURL
	}
	return loaded
}

// Save persists the record immediately. The write is whole-file.
func (s *Store) Save(settings UserSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	s.logger.Info("Settings saved", log.FieldUser, settings.Username)
	return nil
}
