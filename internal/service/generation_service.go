package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
)

// Generator runs a single generation request. *generation.Pipeline
// implements it.
type Generator interface {
	Run(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
	Sanitizer(op domain.Operation) *generation.Sanitizer
}

// Archiver hands a record to background persistence. It never reports
// failure to the caller.
type Archiver interface {
	Archive(ctx context.Context, rec *domain.ArticleRecord)
}

// ArticleRepository stores and lists articles synchronously.
type ArticleRepository interface {
	Store(ctx context.Context, rec *domain.ArticleRecord) error
	List(ctx context.Context, owner string, kind domain.ArticleKind) ([]domain.ArticleRecord, error)
}

// Caller identifies who a generation runs for and carries an optional
// per-call API key.
type Caller struct {
	Owner      string
	Credential string
}

// GenerationService provides the article generation use cases.
type GenerationService struct {
	generator         Generator
	credentials       *CredentialResolver
	archiver          Archiver
	articles          ArticleRepository
	synthesisProvider domain.Provider
	logger            *slog.Logger
}

// GenerationServiceConfig collects the collaborators of a GenerationService.
// Archiver and Articles may be nil when no article store is configured.
type GenerationServiceConfig struct {
	Generator         Generator
	Credentials       *CredentialResolver
	Archiver          Archiver
	Articles          ArticleRepository
	SynthesisProvider domain.Provider
	Logger            *slog.Logger
}

// NewGenerationService validates cfg and creates the service.
func NewGenerationService(cfg GenerationServiceConfig) (*GenerationService, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("generation service requires a generator")
	}
	if !cfg.SynthesisProvider.Valid() {
		return nil, fmt.Errorf("%w: synthesis provider %q", domain.ErrUnsupportedProvider, cfg.SynthesisProvider)
	}
	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}
	creds := cfg.Credentials
	if creds == nil {
		creds = NewCredentialResolver(nil, l)
	}
	return &GenerationService{
		generator:         cfg.Generator,
		credentials:       creds,
		archiver:          cfg.Archiver,
		articles:          cfg.Articles,
		synthesisProvider: cfg.SynthesisProvider,
		logger:            l,
	}, nil
}

// SynthesisProvider is the provider used by SynthesizeFinal.
func (s *GenerationService) SynthesisProvider() domain.Provider {
	return s.synthesisProvider
}

// GenerateTitle suggests a blog title for keyword.
func (s *GenerationService) GenerateTitle(ctx context.Context, caller Caller, keyword string, provider domain.Provider) (domain.GenerationResult, error) {
	return s.run(ctx, caller, domain.GenerationRequest{
		Operation: domain.OperationTitle,
		Provider:  provider,
		Fields:    domain.Fields{domain.FieldKeyword: keyword},
	})
}

// GenerateContent writes an article body for title. keyword is optional.
func (s *GenerationService) GenerateContent(ctx context.Context, caller Caller, title, keyword string, provider domain.Provider) (domain.GenerationResult, error) {
	fields := domain.Fields{domain.FieldTitle: title}
	if strings.TrimSpace(keyword) != "" {
		fields[domain.FieldKeyword] = keyword
	}
	return s.run(ctx, caller, domain.GenerationRequest{
		Operation: domain.OperationContent,
		Provider:  provider,
		Fields:    fields,
	})
}

// GenerateDraft writes a draft from brief and archives it for the caller.
func (s *GenerationService) GenerateDraft(ctx context.Context, caller Caller, brief domain.Brief, provider domain.Provider) (domain.GenerationResult, error) {
	res, err := s.run(ctx, caller, domain.GenerationRequest{
		Operation: domain.OperationDraft,
		Provider:  provider,
		Fields:    brief.Fields(),
	})
	if err != nil {
		return res, err
	}
	s.archive(ctx, caller.Owner, domain.ArticleKindDraft, provider, brief, res.Text)
	return res, nil
}

// AnalyzeDraft critiques draft. Every critique field is sanitized with the
// critique profile.
func (s *GenerationService) AnalyzeDraft(ctx context.Context, caller Caller, draft string, provider domain.Provider) (domain.Critique, error) {
	if strings.TrimSpace(draft) == "" {
		return domain.Critique{}, ErrEmptyDraft
	}
	res, err := s.run(ctx, caller, domain.GenerationRequest{
		Operation: domain.OperationCritique,
		Provider:  provider,
		Fields:    domain.Fields{domain.FieldDraft: draft},
	})
	if err != nil {
		return domain.Critique{}, err
	}

	c := generation.ParseCritique(res.Text)
	san := s.generator.Sanitizer(domain.OperationCritique)
	c.Provider = provider
	c.Strengths = san.CleanAll(c.Strengths)
	c.Weaknesses = san.CleanAll(c.Weaknesses)
	c.Improvement = san.Clean(c.Improvement)
	return c, nil
}

// SynthesizeFinal merges drafts and critiques into a final article with the
// configured synthesis provider and archives it.
func (s *GenerationService) SynthesizeFinal(ctx context.Context, caller Caller, brief domain.Brief, drafts []domain.DraftRef, critiques []domain.Critique) (domain.GenerationResult, error) {
	if len(drafts) == 0 {
		return domain.GenerationResult{}, ErrNoDrafts
	}
	res, err := s.run(ctx, caller, domain.GenerationRequest{
		Operation: domain.OperationSynthesis,
		Provider:  s.synthesisProvider,
		Fields:    brief.Fields(),
		Drafts:    drafts,
		Critiques: critiques,
	})
	if err != nil {
		return res, err
	}
	s.archive(ctx, caller.Owner, domain.ArticleKindFinal, s.synthesisProvider, brief, res.Text)
	return res, nil
}

// SaveArticle stores rec immediately and reports store failures, unlike
// the background archiving done after generation.
func (s *GenerationService) SaveArticle(ctx context.Context, rec *domain.ArticleRecord) error {
	if s.articles == nil {
		return ErrStorageUnavailable
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := s.articles.Store(ctx, rec); err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

// ListArticles returns owner's articles of kind, newest first.
func (s *GenerationService) ListArticles(ctx context.Context, owner string, kind domain.ArticleKind) ([]domain.ArticleRecord, error) {
	if s.articles == nil {
		return nil, ErrStorageUnavailable
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidArticleKind)
	}
	records, err := s.articles.List(ctx, owner, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return records, nil
}

func (s *GenerationService) run(ctx context.Context, caller Caller, req domain.GenerationRequest) (domain.GenerationResult, error) {
	if !req.Provider.Valid() {
		return domain.GenerationResult{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, req.Provider)
	}
	req.Credential = s.credentials.Resolve(ctx, caller.Owner, req.Provider, caller.Credential)
	return s.generator.Run(ctx, req)
}

func (s *GenerationService) archive(ctx context.Context, owner string, kind domain.ArticleKind, provider domain.Provider, brief domain.Brief, body string) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if s.archiver == nil {
		log.DebugContext(ctx, "article archiving disabled", "kind", string(kind))
		return
	}
	rec, err := domain.NewArticleRecord(owner, kind, provider, brief, body)
	if err != nil {
		log.WarnContext(ctx, "article not archived",
			"kind", string(kind),
			"reason", err.Error())
		return
	}
	s.archiver.Archive(ctx, rec)
}
