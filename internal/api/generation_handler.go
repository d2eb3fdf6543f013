package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/service"
)

// Generator is the subset of *service.GenerationService used by the
// generation endpoints.
type Generator interface {
	GenerateTitle(ctx context.Context, caller service.Caller, keyword string, provider domain.Provider) (domain.GenerationResult, error)
	GenerateContent(ctx context.Context, caller service.Caller, title, keyword string, provider domain.Provider) (domain.GenerationResult, error)
	GenerateDraft(ctx context.Context, caller service.Caller, brief domain.Brief, provider domain.Provider) (domain.GenerationResult, error)
	AnalyzeDraft(ctx context.Context, caller service.Caller, draft string, provider domain.Provider) (domain.Critique, error)
	SynthesizeFinal(ctx context.Context, caller service.Caller, brief domain.Brief, drafts []domain.DraftRef, critiques []domain.Critique) (domain.GenerationResult, error)
}

// GenerationHandler serves the generation and analysis endpoints.
type GenerationHandler struct {
	generator Generator
	logger    *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(generator Generator, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerationHandler")
	}
	return &GenerationHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "generation_handler")),
	}
}

// GenerateTitle handles POST /generate/title
func (h *GenerationHandler) GenerateTitle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req TitleRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	provider, ok := parseProvider(w, r, req.Model)
	if !ok {
		return
	}

	res, err := h.generator.GenerateTitle(r.Context(), caller(userID, req.APIKey), req.Keyword, provider)
	if err != nil {
		HandleAPIError(w, r, err, "제목 생성 중 오류가 발생했습니다.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TitleResponse{Title: res.Text})
}

// GenerateContent handles POST /generate/content
func (h *GenerationHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req ContentRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	provider, ok := parseProvider(w, r, req.Model)
	if !ok {
		return
	}

	res, err := h.generator.GenerateContent(r.Context(), caller(userID, req.APIKey), req.Title, req.Keyword, provider)
	if err != nil {
		HandleAPIError(w, r, err, "본문 생성 중 오류가 발생했습니다.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ContentResponse{Content: res.Text})
}

// GenerateDraft handles POST /generate/draft. The draft is archived in the
// background for the caller.
func (h *GenerationHandler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req DraftRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	provider, ok := parseProvider(w, r, req.Model)
	if !ok {
		return
	}

	res, err := h.generator.GenerateDraft(r.Context(), caller(userID, req.APIKey), req.Brief(), provider)
	if err != nil {
		HandleAPIError(w, r, err, "초안 생성 중 오류가 발생했습니다.")
		return
	}
	log.Debug("draft generated",
		slog.String("provider", string(provider)),
		slog.Int("length", len(res.Text)))
	shared.RespondWithJSON(w, r, http.StatusOK, ContentResponse{Content: res.Text, Model: string(provider)})
}

// AnalyzeDraft handles POST /analyze/draft
func (h *GenerationHandler) AnalyzeDraft(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req AnalyzeRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	provider, ok := parseProvider(w, r, req.Model)
	if !ok {
		return
	}

	critique, err := h.generator.AnalyzeDraft(r.Context(), caller(userID, req.APIKey), req.DraftContent, provider)
	if err != nil {
		HandleAPIError(w, r, err, "초안 분석 중 오류가 발생했습니다.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, AnalyzeResponse{
		Pros:        nonNil(critique.Strengths),
		Cons:        nonNil(critique.Weaknesses),
		Improvement: critique.Improvement,
	})
}

// SynthesizeFinal handles POST /generate/final
func (h *GenerationHandler) SynthesizeFinal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req FinalRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	drafts := make([]domain.DraftRef, 0, len(req.Drafts))
	for _, d := range req.Drafts {
		provider, ok := parseProvider(w, r, d.Model)
		if !ok {
			return
		}
		drafts = append(drafts, domain.DraftRef{Provider: provider, Text: d.Content})
	}

	critiques := make([]domain.Critique, 0, len(req.Analyses))
	for _, a := range req.Analyses {
		c := domain.Critique{
			Strengths:   a.Pros,
			Weaknesses:  a.Cons,
			Improvement: a.Improvement,
		}
		// an unknown label is kept out of the prompt rather than rejected
		if p, err := domain.ParseProvider(a.Model); err == nil {
			c.Provider = p
		}
		critiques = append(critiques, c)
	}

	res, err := h.generator.SynthesizeFinal(r.Context(), caller(userID, req.APIKey), req.Brief(), drafts, critiques)
	if err != nil {
		HandleAPIError(w, r, err, "최종 글 생성 중 오류가 발생했습니다.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ContentResponse{Content: res.Text, Model: string(res.Provider)})
}

func caller(userID, apiKey string) service.Caller {
	return service.Caller{Owner: userID, Credential: apiKey}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
