package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ktgktg/blogsmith/internal/config"
	"github.com/ktgktg/blogsmith/internal/keyring"
	"github.com/ktgktg/blogsmith/internal/platform/postgres"
	"github.com/ktgktg/blogsmith/internal/store"
)

// setupCredentialStore selects the per-user API key store. With a database
// URL the keys are sealed and kept in Postgres; otherwise they live in
// memory and are lost on restart. The returned *sql.DB is nil for the
// in-memory store.
func setupCredentialStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.CredentialStore, *sql.DB, error) {
	if cfg.Database.URL == "" {
		logger.Warn("no database configured, stored API keys will not survive a restart")
		return store.NewMemoryCredentialStore(), nil, nil
	}

	secret := cfg.Auth.KeyEncryptionSecret
	if secret == "" {
		secret = cfg.Auth.JWTSecret
	}
	sealer, err := keyring.New(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create key sealer: %w", err)
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established")

	if err := postgres.Migrate(ctx, db, logger.With("component", "migrations")); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return postgres.NewCredentialStore(db, sealer), db, nil
}
