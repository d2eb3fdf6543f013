package store

import (
	"context"
	"time"

	"github.com/ktgktg/blogsmith/internal/domain"
)

// ProviderKey is one user's stored API key for one provider.
type ProviderKey struct {
	Owner     string
	Provider  domain.Provider
	Key       string
	UpdatedAt time.Time
}

// CredentialStore keeps per-user provider API keys.
type CredentialStore interface {
	// Get returns the owner's key for provider.
	// Returns ErrCredentialNotFound if none is stored.
	Get(ctx context.Context, owner string, provider domain.Provider) (string, error)

	// PutAll replaces the owner's keys for the providers present in keys in a
	// single step. An empty value removes the stored key.
	PutAll(ctx context.Context, owner string, keys map[domain.Provider]string) error

	// List returns the owner's stored keys ordered by provider.
	List(ctx context.Context, owner string) ([]ProviderKey, error)
}
