package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/keyring"
	"github.com/ktgktg/blogsmith/internal/store"
)

// CredentialStore implements store.CredentialStore on the user_api_keys
// table. Keys are sealed before they are written.
type CredentialStore struct {
	db     *sql.DB
	sealer *keyring.Sealer
	now    func() time.Time
}

var _ store.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore creates a CredentialStore.
func NewCredentialStore(db *sql.DB, sealer *keyring.Sealer) *CredentialStore {
	return &CredentialStore{db: db, sealer: sealer, now: time.Now}
}

// Get implements store.CredentialStore.
func (s *CredentialStore) Get(ctx context.Context, owner string, provider domain.Provider) (string, error) {
	var sealed string
	err := s.db.QueryRowContext(ctx,
		`SELECT sealed_key FROM user_api_keys WHERE owner = $1 AND provider = $2`,
		owner, string(provider),
	).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrCredentialNotFound
	}
	if err != nil {
		return "", store.NewStoreError("credential", "get", MapError(err))
	}

	key, err := s.sealer.Open(sealed)
	if err != nil {
		return "", store.NewStoreError("credential", "get", err)
	}
	return key, nil
}

// PutAll implements store.CredentialStore. All changes commit together.
func (s *CredentialStore) PutAll(ctx context.Context, owner string, keys map[domain.Provider]string) error {
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyOwner)
	}

	providers := make([]domain.Provider, 0, len(keys))
	for p := range keys {
		if !p.Valid() {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrUnsupportedProvider)
		}
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })

	now := s.now().UTC()
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, p := range providers {
			if err := s.put(ctx, tx, owner, p, strings.TrimSpace(keys[p]), now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return store.NewStoreError("credential", "put", err)
	}
	return nil
}

func (s *CredentialStore) put(ctx context.Context, db store.DBTX, owner string, p domain.Provider, key string, now time.Time) error {
	if key == "" {
		_, err := db.ExecContext(ctx,
			`DELETE FROM user_api_keys WHERE owner = $1 AND provider = $2`,
			owner, string(p))
		return MapError(err)
	}

	sealed, err := s.sealer.Seal(key)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO user_api_keys (owner, provider, sealed_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (owner, provider)
		DO UPDATE SET sealed_key = EXCLUDED.sealed_key, updated_at = EXCLUDED.updated_at`,
		owner, string(p), sealed, now)
	return MapError(err)
}

// List implements store.CredentialStore.
func (s *CredentialStore) List(ctx context.Context, owner string) ([]store.ProviderKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT provider, sealed_key, updated_at FROM user_api_keys WHERE owner = $1 ORDER BY provider`,
		owner)
	if err != nil {
		return nil, store.NewStoreError("credential", "list", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var keys []store.ProviderKey
	for rows.Next() {
		var (
			provider, sealed string
			updated          time.Time
		)
		if err := rows.Scan(&provider, &sealed, &updated); err != nil {
			return nil, store.NewStoreError("credential", "list", err)
		}
		key, err := s.sealer.Open(sealed)
		if err != nil {
			return nil, store.NewStoreError("credential", "list", err)
		}
		keys = append(keys, store.ProviderKey{
			Owner:     owner,
			Provider:  domain.Provider(provider),
			Key:       key,
			UpdatedAt: updated,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("credential", "list", err)
	}
	return keys, nil
}
