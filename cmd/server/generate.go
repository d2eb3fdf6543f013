package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/service"
	"github.com/spf13/cobra"
)

// generateOptions are the flags of the generate command.
type generateOptions struct {
	operation string
	provider  string
	apiKey    string

	keyword   string
	title     string
	draftFile string

	brief    domain.Brief
	ageGroup string
}

// newGenerateCmd runs one generation locally and prints the result. Nothing
// is archived.
func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one generation operation and print the result",
		Example: `  server generate --op title --provider openai --keyword "텃밭 가꾸기"
  server generate --op draft --provider groq --topic "텃밭 가꾸기" --intent 정보성 --audience 초보자 --tone 친근함
  server generate --op analyze --provider gemini --draft-file draft.md`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.operation, "op", "title", "operation: title, content, draft or analyze")
	f.StringVar(&opts.provider, "provider", "openai", "provider: openai, groq or gemini")
	f.StringVar(&opts.apiKey, "api-key", "", "API key for this call; defaults to the configured key")
	f.StringVar(&opts.keyword, "keyword", "", "keyword for title and content")
	f.StringVar(&opts.title, "title", "", "title for content")
	f.StringVar(&opts.draftFile, "draft-file", "", "file holding the draft to analyze")
	f.StringVar(&opts.brief.Topic, "topic", "", "draft topic")
	f.StringVar(&opts.brief.Intent, "intent", "", "draft intent")
	f.StringVar(&opts.brief.Audience, "audience", "", "draft target audience")
	f.StringVar(&opts.brief.Tone, "tone", "", "draft tone")
	f.StringVar(&opts.brief.DetailedKeywords, "detailed-keywords", "", "draft detailed keywords")
	f.StringVar(&opts.ageGroup, "age-groups", "", "comma separated age groups")
	f.StringVar(&opts.brief.Gender, "gender", "", "draft target gender")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	// stdout is reserved for the generated text
	l, err := logger.SetupWithWriter(cfg.Server, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	pipeline, err := setupPipeline(cfg, l)
	if err != nil {
		return err
	}
	svc, err := service.NewGenerationService(service.GenerationServiceConfig{
		Generator:         pipeline,
		SynthesisProvider: domain.Provider(cfg.LLM.SynthesisProvider),
		Logger:            l,
	})
	if err != nil {
		return err
	}

	provider, err := domain.ParseProvider(opts.provider)
	if err != nil {
		return err
	}
	caller := service.Caller{Credential: opts.apiKey}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch domain.Operation(opts.operation) {
	case domain.OperationTitle:
		res, err := svc.GenerateTitle(ctx, caller, opts.keyword, provider)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.Text)

	case domain.OperationContent:
		res, err := svc.GenerateContent(ctx, caller, opts.title, opts.keyword, provider)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.Text)

	case domain.OperationDraft:
		brief := opts.brief
		for _, g := range strings.Split(opts.ageGroup, ",") {
			if g = strings.TrimSpace(g); g != "" {
				brief.AgeGroups = append(brief.AgeGroups, g)
			}
		}
		res, err := svc.GenerateDraft(ctx, caller, brief, provider)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.Text)

	case domain.OperationCritique, "analyze":
		if opts.draftFile == "" {
			return fmt.Errorf("--draft-file is required for analyze")
		}
		draft, err := os.ReadFile(opts.draftFile)
		if err != nil {
			return fmt.Errorf("failed to read draft: %w", err)
		}
		critique, err := svc.AnalyzeDraft(ctx, caller, string(draft), provider)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(critique)

	default:
		return fmt.Errorf("unsupported operation %q", opts.operation)
	}
	return nil
}
