package mocks

import (
	"context"
	"sync"

	"github.com/ktgktg/blogsmith/internal/generation"
)

// MockCompleter implements generation.Completer for testing
type MockCompleter struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, prompt string, params generation.CallParams, apiKey string) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	Calls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		Count   int
		Prompts []string
		Params  []generation.CallParams
		APIKeys []string
	}
}

// Complete implements the generation.Completer interface
func (m *MockCompleter) Complete(
	ctx context.Context,
	prompt string,
	params generation.CallParams,
	apiKey string,
) (string, error) {
	m.Calls.mu.Lock()
	m.Calls.Count++
	m.Calls.Prompts = append(m.Calls.Prompts, prompt)
	m.Calls.Params = append(m.Calls.Params, params)
	m.Calls.APIKeys = append(m.Calls.APIKeys, apiKey)
	m.Calls.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt, params, apiKey)
	}
	return m.Text, m.Err
}

// CallCount returns the number of Complete calls so far
func (m *MockCompleter) CallCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return m.Calls.Count
}

// LastAPIKey returns the key passed to the most recent call, or ""
func (m *MockCompleter) LastAPIKey() string {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	if len(m.Calls.APIKeys) == 0 {
		return ""
	}
	return m.Calls.APIKeys[len(m.Calls.APIKeys)-1]
}

// NewMockCompleterWithText creates a MockCompleter that returns text
func NewMockCompleterWithText(text string) *MockCompleter {
	return &MockCompleter{Text: text}
}

// NewMockCompleterWithError creates a MockCompleter that returns err
func NewMockCompleterWithError(err error) *MockCompleter {
	return &MockCompleter{Err: err}
}

// Reset resets the call tracking state
func (m *MockCompleter) Reset() {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()

	m.Calls.Count = 0
	m.Calls.Prompts = nil
	m.Calls.Params = nil
	m.Calls.APIKeys = nil
}
