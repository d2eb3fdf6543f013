package mocks

import (
	"context"
	"sync"

	"github.com/ktgktg/blogsmith/internal/domain"
)

// MockArchiver implements service.Archiver and records every article handed to it
type MockArchiver struct {
	mu      sync.Mutex
	records []*domain.ArticleRecord
}

// Archive implements the service.Archiver interface
func (m *MockArchiver) Archive(_ context.Context, rec *domain.ArticleRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
}

// Records returns the archived records in call order
func (m *MockArchiver) Records() []*domain.ArticleRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.ArticleRecord(nil), m.records...)
}

// MockArticleRepository implements service.ArticleRepository and task.ArticleStore
type MockArticleRepository struct {
	StoreFn func(ctx context.Context, rec *domain.ArticleRecord) error
	ListFn  func(ctx context.Context, owner string, kind domain.ArticleKind) ([]domain.ArticleRecord, error)

	// Defaults used when the function fields are nil
	StoreErr error
	Articles []domain.ArticleRecord
	ListErr  error

	mu     sync.Mutex
	stored []*domain.ArticleRecord
}

// Store implements the ArticleRepository interface
func (m *MockArticleRepository) Store(ctx context.Context, rec *domain.ArticleRecord) error {
	m.mu.Lock()
	m.stored = append(m.stored, rec)
	m.mu.Unlock()

	if m.StoreFn != nil {
		return m.StoreFn(ctx, rec)
	}
	return m.StoreErr
}

// List implements the ArticleRepository interface
func (m *MockArticleRepository) List(ctx context.Context, owner string, kind domain.ArticleKind) ([]domain.ArticleRecord, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, owner, kind)
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []domain.ArticleRecord
	for _, a := range m.Articles {
		if a.Owner == owner && a.Kind == kind {
			out = append(out, a)
		}
	}
	return out, nil
}

// Stored returns the records passed to Store in call order
func (m *MockArticleRepository) Stored() []*domain.ArticleRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.ArticleRecord(nil), m.stored...)
}
