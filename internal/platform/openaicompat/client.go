package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ktgktg/blogsmith/internal/config"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Client sends chat completions to one OpenAI-compatible provider.
type Client struct {
	provider domain.Provider
	model    string
	client   openai.Client
	logger   *slog.Logger
}

// New creates a Client for provider. The API key is not part of the client;
// it is supplied on every call. SDK retries are disabled so each Complete
// issues exactly one request.
func New(provider domain.Provider, cfg config.ProviderConfig, logger *slog.Logger, extra ...option.RequestOption) (*Client, error) {
	if provider != domain.ProviderOpenAI && provider != domain.ProviderGroq {
		return nil, fmt.Errorf("%w: %s is not OpenAI-compatible", generation.ErrInvalidConfig, provider)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	return &Client{
		provider: provider,
		model:    cfg.Model,
		client:   openai.NewClient(opts...),
		logger:   logger.With("provider", string(provider), "model", cfg.Model),
	}, nil
}

// Complete implements generation.Completer.
func (c *Client) Complete(ctx context.Context, prompt string, params generation.CallParams, apiKey string) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(float64(params.Temperature)),
	}
	if params.MaxTokens > 0 {
		req.MaxCompletionTokens = openai.Int(int64(params.MaxTokens))
	}
	if params.JSON {
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	c.logger.DebugContext(ctx, "sending chat completion",
		"max_tokens", params.MaxTokens,
		"json", params.JSON)

	resp, err := c.client.Chat.Completions.New(ctx, req, option.WithAPIKey(apiKey))
	if err != nil {
		return "", c.wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s returned no choices", generation.ErrInvalidResponse, c.provider)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s returned empty content", generation.ErrInvalidResponse, c.provider)
	}
	return text, nil
}

// wrapError converts SDK errors to *generation.CallError, keeping the
// provider's error object fields.
func (c *Client) wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &generation.CallError{
			Provider:   c.provider,
			StatusCode: apiErr.StatusCode,
			Code:       apiErr.Code,
			Type:       apiErr.Type,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return &generation.CallError{Provider: c.provider, Err: err}
}
