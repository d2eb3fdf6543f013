package notion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jomei/notionapi"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/redact"
)

// Article database property names.
const (
	propTitle     = "제목"
	propTopic     = "주제"
	propPreview   = "내용"
	propCreatedAt = "생성일"
	propOwner     = "사용자"
	propModel     = "모델"
	propIntent    = "글 의도"
	propAudience  = "대상 독자"
	propKind      = "유형"
)

// createdAtLayout is the 생성일 format, always in Korean Standard Time.
const createdAtLayout = "2006-01-02 15:04:05"

var kst = time.FixedZone("KST", 9*60*60)

var kindLabels = map[domain.ArticleKind]string{
	domain.ArticleKindDraft: "초안",
	domain.ArticleKindFinal: "최종글",
}

func kindFromLabel(label string) domain.ArticleKind {
	for k, l := range kindLabels {
		if l == label {
			return k
		}
	}
	return ""
}

// ArticleStore archives generated articles as pages of a Notion database.
type ArticleStore struct {
	databases  DatabaseQuerier
	pages      PageCreator
	blocks     BlockService
	databaseID notionapi.DatabaseID
	logger     *slog.Logger
}

// NewArticleStore creates an ArticleStore over databaseID. An empty id yields
// a store whose operations return ErrNotConfigured.
func NewArticleStore(databases DatabaseQuerier, pages PageCreator, blocks BlockService, databaseID string, l *slog.Logger) *ArticleStore {
	if l == nil {
		l = slog.Default()
	}
	return &ArticleStore{
		databases:  databases,
		pages:      pages,
		blocks:     blocks,
		databaseID: notionapi.DatabaseID(databaseID),
		logger:     l,
	}
}

// Store writes rec as a new page. Preview properties are truncated; the full
// body is written as page blocks in batches.
func (s *ArticleStore) Store(ctx context.Context, rec *domain.ArticleRecord) error {
	if s.databaseID == "" {
		return ErrNotConfigured
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid article record: %w", err)
	}

	blocks := markdownBlocks(rec.Body)
	first := blocks
	if len(first) > maxBlocksPerRequest {
		first = blocks[:maxBlocksPerRequest]
	}

	page, err := s.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.databaseID,
		},
		Properties: articleProperties(rec),
		Children:   first,
	})
	if err != nil {
		return fmt.Errorf("failed to create article page: %w", err)
	}

	pageID := notionapi.BlockID(page.ID.String())
	for start := len(first); start < len(blocks); start += maxBlocksPerRequest {
		end := start + maxBlocksPerRequest
		if end > len(blocks) {
			end = len(blocks)
		}
		_, err := s.blocks.AppendChildren(ctx, pageID, &notionapi.AppendBlockChildrenRequest{
			Children: blocks[start:end],
		})
		if err != nil {
			return fmt.Errorf("failed to append article blocks %d-%d: %w", start, end, err)
		}
	}

	s.logger.DebugContext(ctx, "article stored",
		"page_id", page.ID.String(),
		"kind", string(rec.Kind),
		"blocks", len(blocks))
	return nil
}

func articleProperties(rec *domain.ArticleRecord) notionapi.Properties {
	title := rec.Title
	if strings.TrimSpace(title) == "" {
		title = rec.Topic
	}
	return notionapi.Properties{
		propTitle:     titleProperty(truncateRunes(title, maxTitleLength)),
		propTopic:     richTextProperty(truncateRunes(rec.Topic, maxTextLength)),
		propPreview:   richTextProperty(truncateRunes(rec.Body, maxTextLength)),
		propCreatedAt: richTextProperty(rec.CreatedAt.In(kst).Format(createdAtLayout)),
		propOwner:     richTextProperty(rec.Owner),
		propModel:     selectProperty(string(rec.Provider)),
		propIntent:    richTextProperty(truncateRunes(rec.Intent, maxTextLength)),
		propAudience:  richTextProperty(truncateRunes(rec.Audience, maxTextLength)),
		propKind:      selectProperty(kindLabels[rec.Kind]),
	}
}

// List returns owner's articles of kind, newest first. Bodies are rebuilt
// from the page blocks and fall back to the preview property.
func (s *ArticleStore) List(ctx context.Context, owner string, kind domain.ArticleKind) ([]domain.ArticleRecord, error) {
	if s.databaseID == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(owner) == "" {
		return nil, domain.ErrEmptyOwner
	}
	if !kind.Valid() {
		return nil, domain.ErrInvalidArticleKind
	}

	req := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.AndCompoundFilter{
			notionapi.PropertyFilter{
				Property: propOwner,
				RichText: &notionapi.TextFilterCondition{Equals: owner},
			},
			notionapi.PropertyFilter{
				Property: propKind,
				Select:   &notionapi.SelectFilterCondition{Equals: kindLabels[kind]},
			},
		},
		Sorts: []notionapi.SortObject{
			{Property: propCreatedAt, Direction: notionapi.SortOrderDESC},
		},
		PageSize: maxBlocksPerRequest,
	}

	var records []domain.ArticleRecord
	for {
		resp, err := s.databases.Query(ctx, s.databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("failed to query article database: %w", err)
		}
		for _, page := range resp.Results {
			records = append(records, s.recordFromPage(ctx, page))
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		req.StartCursor = notionapi.Cursor(resp.NextCursor)
	}
	return records, nil
}

func (s *ArticleStore) recordFromPage(ctx context.Context, page notionapi.Page) domain.ArticleRecord {
	props := page.Properties
	rec := domain.ArticleRecord{
		Owner:    richTextValue(props[propOwner]),
		Title:    titleValue(props[propTitle]),
		Topic:    richTextValue(props[propTopic]),
		Intent:   richTextValue(props[propIntent]),
		Audience: richTextValue(props[propAudience]),
		Provider: domain.Provider(selectValue(props[propModel])),
		Kind:     kindFromLabel(selectValue(props[propKind])),
	}
	if id, err := uuid.Parse(page.ID.String()); err == nil {
		rec.ID = id
	}
	if t, err := time.ParseInLocation(createdAtLayout, richTextValue(props[propCreatedAt]), kst); err == nil {
		rec.CreatedAt = t
	} else {
		rec.CreatedAt = page.CreatedTime
	}

	body, err := pageText(ctx, s.blocks, notionapi.BlockID(page.ID.String()))
	if err != nil {
		s.logger.WarnContext(ctx, "falling back to article preview",
			"page_id", page.ID.String(),
			"error", redact.Error(err))
	}
	if strings.TrimSpace(body) == "" {
		body = richTextValue(props[propPreview])
	}
	rec.Body = body
	return rec
}
