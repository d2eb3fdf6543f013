package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/ktgktg/blogsmith/internal/domain"
)

// CallParams are the sampling settings for one call. They are fixed per
// operation; see ParamsFor.
type CallParams struct {
	Temperature float32
	MaxTokens   int
	// JSON asks the provider for a JSON object response.
	JSON bool
}

var paramsByOperation = map[domain.Operation]CallParams{
	domain.OperationTitle:     {Temperature: 0.7, MaxTokens: 100},
	domain.OperationContent:   {Temperature: 0.4, MaxTokens: 4000},
	domain.OperationDraft:     {Temperature: 0.7, MaxTokens: 2000},
	domain.OperationCritique:  {Temperature: 0.7, MaxTokens: 1000, JSON: true},
	domain.OperationSynthesis: {Temperature: 0.7, MaxTokens: 8192},
}

// ParamsFor returns the call parameters of op.
func ParamsFor(op domain.Operation) CallParams {
	return paramsByOperation[op]
}

// Completer is implemented by each provider client. This interface serves as
// the boundary between the application core and external LLM services.
type Completer interface {
	// Complete sends prompt to the provider and returns the raw generated
	// text. apiKey applies to this call only. Implementations make exactly
	// one request and do not retry; provider rejections are returned as
	// *CallError.
	Complete(ctx context.Context, prompt string, params CallParams, apiKey string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string, params CallParams, apiKey string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string, params CallParams, apiKey string) (string, error) {
	return f(ctx, prompt, params, apiKey)
}

// Adapter dispatches calls to the configured provider clients.
type Adapter struct {
	completers map[domain.Provider]Completer
	defaults   map[domain.Provider]string
}

// NewAdapter creates an Adapter. completers holds the clients available in
// this process; defaultKeys holds the process-wide fallback credential per
// provider. Both maps are copied.
func NewAdapter(completers map[domain.Provider]Completer, defaultKeys map[domain.Provider]string) *Adapter {
	a := &Adapter{
		completers: make(map[domain.Provider]Completer, len(completers)),
		defaults:   make(map[domain.Provider]string, len(defaultKeys)),
	}
	for p, c := range completers {
		if c != nil {
			a.completers[p] = c
		}
	}
	for p, k := range defaultKeys {
		a.defaults[p] = k
	}
	return a
}

// Available reports whether provider has a configured client.
func (a *Adapter) Available(provider domain.Provider) bool {
	_, ok := a.completers[provider]
	return ok
}

// Invoke runs one completion. An empty credential falls back to the
// provider's default key.
func (a *Adapter) Invoke(ctx context.Context, provider domain.Provider, prompt string, params CallParams, credential string) (string, error) {
	if !provider.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, provider)
	}
	c, ok := a.completers[provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrProviderUnavailable, provider)
	}

	key := strings.TrimSpace(credential)
	if key == "" {
		key = a.defaults[provider]
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingCredential, provider)
	}

	return c.Complete(ctx, prompt, params, key)
}
