package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ktgktg/blogsmith/internal/config"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"google.golang.org/genai"
)

// Client implements generation.Completer for Gemini.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// model is the name of the Gemini model to use
	model string

	// baseURL overrides the API endpoint; empty uses the SDK default
	baseURL string

	// httpClient is shared by the per-call genai clients
	httpClient *http.Client
}

// NewClient creates a new Gemini Client.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: provider configuration; Model is required, BaseURL is optional
//   - httpClient: transport shared across calls; nil uses http.DefaultClient
//
// Returns:
//   - A Client or an error wrapping generation.ErrInvalidConfig
func NewClient(logger *slog.Logger, cfg config.ProviderConfig, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		logger:     logger.With("provider", string(domain.ProviderGemini), "model", cfg.Model),
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}, nil
}

// Complete implements generation.Completer.
func (c *Client) Complete(ctx context.Context, prompt string, params generation.CallParams, apiKey string) (string, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return "", fmt.Errorf("%w: create gemini client: %v", generation.ErrInvalidConfig, err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(params.Temperature),
	}
	if params.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(params.MaxTokens)
	}
	if params.JSON {
		genCfg.ResponseMIMEType = "application/json"
	}

	c.logger.DebugContext(ctx, "sending generate content request",
		"max_tokens", params.MaxTokens,
		"json", params.JSON)

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", wrapError(err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: gemini returned no text", generation.ErrInvalidResponse)
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &generation.CallError{
			Provider:   domain.ProviderGemini,
			StatusCode: apiErr.Code,
			Status:     apiErr.Status,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return &generation.CallError{Provider: domain.ProviderGemini, Err: err}
}
