package main

import (
	"fmt"
	"log/slog"

	"github.com/ktgktg/blogsmith/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.Notion.ArticleDatabaseID != "" {
		slog.Debug("Notion configuration", "article_database_present", true)
	}

	return cfg, nil
}
