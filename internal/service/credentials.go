package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/redact"
	"github.com/ktgktg/blogsmith/internal/store"
)

// CredentialResolver picks the API key for a generation call. A per-call
// override wins over the caller's stored key. When neither exists the empty
// string is returned and the adapter falls back to the configured default.
type CredentialResolver struct {
	keys   store.CredentialStore
	logger *slog.Logger
}

// NewCredentialResolver creates a resolver. keys may be nil, in which case
// only overrides and configured defaults are used.
func NewCredentialResolver(keys store.CredentialStore, l *slog.Logger) *CredentialResolver {
	if l == nil {
		l = slog.Default()
	}
	return &CredentialResolver{keys: keys, logger: l}
}

// Resolve returns the key to send for owner's call to provider. Store
// failures are logged and treated as "no stored key".
func (r *CredentialResolver) Resolve(ctx context.Context, owner string, provider domain.Provider, override string) string {
	if key := strings.TrimSpace(override); key != "" {
		return key
	}
	if r == nil || r.keys == nil || strings.TrimSpace(owner) == "" {
		return ""
	}

	key, err := r.keys.Get(ctx, owner, provider)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.FromContextOrDefault(ctx, r.logger).WarnContext(ctx, "stored credential lookup failed",
				"owner", owner,
				"provider", string(provider),
				"error", redact.Error(err))
		}
		return ""
	}
	return key
}
