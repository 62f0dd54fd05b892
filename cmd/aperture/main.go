package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"aperture/internal/cache"
	"aperture/internal/config"
	"aperture/internal/controller"
	"aperture/internal/gateway"
	"aperture/internal/log"
	"aperture/internal/settings"
	"aperture/internal/ui"
)

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     cfg.LogLevel,
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	store := settings.NewStore(cfg.SettingsPath, cfg.DefaultScriptURL, logger)
	userSettings := store.Load()

	monthCache, err := cache.New(cfg.CacheDBPath, logger)
	if err != nil {
		logger.Error("Failed to open month cache", log.FieldError, err, "path", cfg.CacheDBPath)
		os.Exit(1)
	}
	defer monthCache.Close()

	client := gateway.New(cfg.HTTPTimeout, logger)
	ctrl := controller.New(userSettings, store, time.Now)
	loader := controller.NewLoader(client, monthCache, logger)

	logger.Info("Starting aperture",
		log.FieldOperation, log.OpStartup,
		log.FieldUser, userSettings.Username,
		"settings_path", cfg.SettingsPath)

	program := tea.NewProgram(
		ui.NewModel(ctrl, loader, client, logger),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		logger.Error("UI terminated with error", log.FieldError, err)
		fmt.Fprintln(os.Stderr, "aperture:", err)
		os.Exit(1)
	}

	logger.Info("Stopped", log.FieldOperation, log.OpShutdown)
}
