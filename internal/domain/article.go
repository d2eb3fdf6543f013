package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArticleKind distinguishes stored drafts from final articles.
type ArticleKind string

// Article kinds.
const (
	ArticleKindDraft ArticleKind = "draft"
	ArticleKindFinal ArticleKind = "final"
)

// Valid reports whether k is a known kind.
func (k ArticleKind) Valid() bool {
	return k == ArticleKindDraft || k == ArticleKindFinal
}

// ArticleRecord is a generated article archived for later browsing.
type ArticleRecord struct {
	ID        uuid.UUID   `json:"id"`
	Owner     string      `json:"owner"`
	Title     string      `json:"title"`
	Topic     string      `json:"topic"`
	Body      string      `json:"content"`
	Intent    string      `json:"intent"`
	Audience  string      `json:"audience"`
	Provider  Provider    `json:"model"`
	Kind      ArticleKind `json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewArticleRecord creates a record with a fresh ID and timestamp. The title
// defaults to the topic.
func NewArticleRecord(owner string, kind ArticleKind, provider Provider, brief Brief, body string) (*ArticleRecord, error) {
	rec := &ArticleRecord{
		ID:        uuid.New(),
		Owner:     owner,
		Title:     brief.Topic,
		Topic:     brief.Topic,
		Body:      body,
		Intent:    brief.Intent,
		Audience:  brief.Audience,
		Provider:  provider,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate checks the fields every store relies on.
func (r *ArticleRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(r.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(r.Body) == "" {
		return ErrEmptyContent
	}
	if !r.Kind.Valid() {
		return ErrInvalidArticleKind
	}
	return nil
}
