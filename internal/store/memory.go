package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ktgktg/blogsmith/internal/domain"
)

// MemoryCredentialStore is a process-local CredentialStore. Keys are lost on
// restart.
type MemoryCredentialStore struct {
	mu   sync.RWMutex
	keys map[string]map[domain.Provider]ProviderKey
	now  func() time.Time
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)

// NewMemoryCredentialStore creates an empty store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		keys: make(map[string]map[domain.Provider]ProviderKey),
		now:  time.Now,
	}
}

// Get implements CredentialStore.
func (s *MemoryCredentialStore) Get(_ context.Context, owner string, provider domain.Provider) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.keys[owner][provider]
	if !ok {
		return "", ErrCredentialNotFound
	}
	return k.Key, nil
}

// PutAll implements CredentialStore.
func (s *MemoryCredentialStore) PutAll(_ context.Context, owner string, keys map[domain.Provider]string) error {
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, domain.ErrEmptyOwner)
	}
	for p := range keys {
		if !p.Valid() {
			return fmt.Errorf("%w: %w", ErrInvalidEntity, domain.ErrUnsupportedProvider)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userKeys := s.keys[owner]
	if userKeys == nil {
		userKeys = make(map[domain.Provider]ProviderKey)
		s.keys[owner] = userKeys
	}
	now := s.now().UTC()
	for p, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			delete(userKeys, p)
			continue
		}
		userKeys[p] = ProviderKey{Owner: owner, Provider: p, Key: k, UpdatedAt: now}
	}
	return nil
}

// List implements CredentialStore.
func (s *MemoryCredentialStore) List(_ context.Context, owner string) ([]ProviderKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProviderKey, 0, len(s.keys[owner]))
	for _, k := range s.keys[owner] {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}
