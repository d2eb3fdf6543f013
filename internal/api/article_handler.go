package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
)

// createdDateLayout renders history timestamps in Korean Standard Time.
const createdDateLayout = "2006-01-02 15:04:05"

var kst = time.FixedZone("KST", 9*60*60)

// ArticleLibrary is the subset of *service.GenerationService used by the
// save and history endpoints.
type ArticleLibrary interface {
	SaveArticle(ctx context.Context, rec *domain.ArticleRecord) error
	ListArticles(ctx context.Context, owner string, kind domain.ArticleKind) ([]domain.ArticleRecord, error)
}

// ArticleHandler serves explicit saves and the article history.
type ArticleHandler struct {
	library ArticleLibrary
	logger  *slog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(library ArticleLibrary, logger *slog.Logger) *ArticleHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ArticleHandler")
	}
	return &ArticleHandler{
		library: library,
		logger:  logger.With(slog.String("component", "article_handler")),
	}
}

// SaveArticle handles POST /save/article. Unlike background archiving, store
// failures are reported to the caller.
func (h *ArticleHandler) SaveArticle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req SaveArticleRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	kind := domain.ArticleKindFinal
	if req.Kind != "" {
		kind = domain.ArticleKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	}

	var provider domain.Provider
	if strings.TrimSpace(req.Model) != "" {
		if provider, ok = parseProvider(w, r, req.Model); !ok {
			return
		}
	}

	brief := domain.Brief{
		Topic:    strings.TrimSpace(req.Topic),
		Intent:   strings.TrimSpace(req.Intent),
		Audience: strings.TrimSpace(req.Audience),
	}
	rec, err := domain.NewArticleRecord(userID, kind, provider, brief, req.Content)
	if err == nil {
		err = h.library.SaveArticle(r.Context(), rec)
	}
	if err != nil {
		HandleAPIError(w, r, err, "글 저장 중 오류가 발생했습니다.")
		return
	}

	log.Info("article saved",
		slog.String("article_id", rec.ID.String()),
		slog.String("kind", string(kind)))
	shared.RespondWithJSON(w, r, http.StatusCreated, StatusResponse{
		Success: true,
		Message: "글이 저장되었습니다.",
	})
}

// ListArticles handles GET /history/articles?kind=draft|final. kind
// defaults to final.
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	kind := domain.ArticleKindFinal
	if q := strings.TrimSpace(r.URL.Query().Get("kind")); q != "" {
		kind = domain.ArticleKind(strings.ToLower(q))
	}

	records, err := h.library.ListArticles(r.Context(), userID, kind)
	if err != nil {
		HandleAPIError(w, r, err, "글 목록을 불러오지 못했습니다.")
		return
	}

	resp := HistoryResponse{Articles: make([]ArticleResponse, 0, len(records))}
	for i := range records {
		resp.Articles = append(resp.Articles, articleToResponse(&records[i]))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// articleToResponse converts a domain.ArticleRecord to an ArticleResponse
func articleToResponse(rec *domain.ArticleRecord) ArticleResponse {
	created := ""
	if !rec.CreatedAt.IsZero() {
		created = rec.CreatedAt.In(kst).Format(createdDateLayout)
	}
	return ArticleResponse{
		ID:          rec.ID.String(),
		Title:       rec.Title,
		Topic:       rec.Topic,
		Content:     rec.Body,
		CreatedDate: created,
		Model:       string(rec.Provider),
		Intent:      rec.Intent,
		Audience:    rec.Audience,
		Kind:        string(rec.Kind),
	}
}
