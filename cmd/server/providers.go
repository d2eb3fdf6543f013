package main

import (
	"fmt"
	"log/slog"

	"github.com/ktgktg/blogsmith/internal/config"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/ktgktg/blogsmith/internal/platform/gemini"
	"github.com/ktgktg/blogsmith/internal/platform/openaicompat"
)

// setupPipeline builds the provider clients for every enabled provider and
// the generation pipeline over them. Configured API keys become the
// process-wide fallback credentials.
func setupPipeline(cfg *config.Config, logger *slog.Logger) (*generation.Pipeline, error) {
	completers := make(map[domain.Provider]generation.Completer, len(domain.Providers))
	defaults := make(map[domain.Provider]string, len(domain.Providers))

	for _, p := range domain.Providers {
		pc := providerConfig(cfg.LLM, p)
		if !pc.Enabled {
			logger.Info("provider disabled", "provider", string(p))
			continue
		}

		var (
			c   generation.Completer
			err error
		)
		switch p {
		case domain.ProviderGemini:
			c, err = gemini.NewClient(logger, pc, nil)
		default:
			c, err = openaicompat.New(p, pc, logger)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to initialize %s client: %w", p, err)
		}
		completers[p] = c
		defaults[p] = pc.APIKey
		logger.Info("provider client initialized",
			"provider", string(p),
			"model", pc.Model,
			"default_key_present", pc.APIKey != "")
	}

	prompts, err := generation.NewPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt catalog: %w", err)
	}
	sanitizers, err := generation.NewSanitizers(generation.ProfilesFromConfig(cfg.Sanitize))
	if err != nil {
		return nil, fmt.Errorf("failed to build sanitizers: %w", err)
	}

	adapter := generation.NewAdapter(completers, defaults)
	return generation.NewPipeline(prompts, adapter, sanitizers, logger.With("component", "generation")), nil
}

func providerConfig(cfg config.LLMConfig, p domain.Provider) config.ProviderConfig {
	switch p {
	case domain.ProviderOpenAI:
		return cfg.OpenAI
	case domain.ProviderGroq:
		return cfg.Groq
	default:
		return cfg.Gemini
	}
}
