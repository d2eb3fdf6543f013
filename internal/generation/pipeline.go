package generation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/redact"
)

// Pipeline renders, invokes and sanitizes a single generation request. It
// holds only read-only collaborators and is safe for concurrent use.
type Pipeline struct {
	prompts    *PromptBuilder
	adapter    *Adapter
	sanitizers Sanitizers
	logger     *slog.Logger
}

// NewPipeline wires the pipeline's collaborators.
func NewPipeline(prompts *PromptBuilder, adapter *Adapter, sanitizers Sanitizers, l *slog.Logger) *Pipeline {
	if l == nil {
		l = slog.Default()
	}
	return &Pipeline{prompts: prompts, adapter: adapter, sanitizers: sanitizers, logger: l}
}

// Sanitizer returns the sanitizer configured for op.
func (p *Pipeline) Sanitizer(op domain.Operation) *Sanitizer {
	return p.sanitizers.For(op)
}

// Available reports whether provider can be called in this process.
func (p *Pipeline) Available(provider domain.Provider) bool {
	return p.adapter.Available(provider)
}

// Run executes req. Input and resolution errors (unsupported provider,
// missing field, unavailable provider, missing credential) are returned as
// they are; provider failures are returned as *Failure.
func (p *Pipeline) Run(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, p.logger).With(
		"operation", string(req.Operation),
		"provider", string(req.Provider),
	)

	if !req.Provider.Valid() {
		return domain.GenerationResult{}, domain.ErrUnsupportedProvider
	}

	prompt, err := p.prompts.Render(req.Operation, PromptInput{
		Fields:    req.Fields,
		Drafts:    req.Drafts,
		Critiques: req.Critiques,
	})
	if err != nil {
		return domain.GenerationResult{}, err
	}
	log.DebugContext(ctx, "rendered prompt", "prompt_length", len(prompt))

	raw, err := p.adapter.Invoke(ctx, req.Provider, prompt, ParamsFor(req.Operation), req.Credential)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedProvider) ||
			errors.Is(err, ErrProviderUnavailable) ||
			errors.Is(err, ErrMissingCredential) {
			return domain.GenerationResult{}, err
		}
		failure := Classify(err, req.Provider)
		log.WarnContext(ctx, "generation failed",
			"category", string(failure.Category),
			"error", redact.Error(err))
		return domain.GenerationResult{}, failure
	}

	var text string
	if req.Operation == domain.OperationCritique {
		// critique fields are sanitized individually after parsing
		text = raw
	} else {
		text = p.sanitizers.For(req.Operation).Clean(raw)
	}
	log.InfoContext(ctx, "generation succeeded",
		"raw_length", len(raw),
		"text_length", len(text))

	return domain.GenerationResult{Text: text, Operation: req.Operation, Provider: req.Provider}, nil
}
