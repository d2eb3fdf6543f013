package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ktgktg/blogsmith/internal/config"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type geminiRequest struct {
	path   string
	apiKey string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string, got *geminiRequest, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		got.path = r.URL.Path
		got.apiKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(nil, config.ProviderConfig{Model: "gemini-2.5-flash-lite", BaseURL: baseURL + "/"}, nil)
	require.NoError(t, err)
	return c
}

func TestCompleteReturnsCandidateText(t *testing.T) {
	var got geminiRequest
	hits := 0
	resp := `{"candidates": [{"content": {"role": "model", "parts": [{"text": "최종 "}, {"text": "완성 글"}]}, "finishReason": "STOP"}]}`
	srv := newTestServer(t, http.StatusOK, resp, &got, &hits)
	c := newTestClient(t, srv.URL)

	text, err := c.Complete(context.Background(), "프롬프트", generation.CallParams{Temperature: 0.7, MaxTokens: 8192}, "AIza-call-key")

	require.NoError(t, err)
	assert.Equal(t, "최종 완성 글", text)
	assert.Equal(t, 1, hits)
	assert.Contains(t, got.path, "gemini-2.5-flash-lite:generateContent")
	assert.Equal(t, "AIza-call-key", got.apiKey)

	genCfg, ok := got.body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 8192, genCfg["maxOutputTokens"])
	_, hasMime := genCfg["responseMimeType"]
	assert.False(t, hasMime)
}

func TestCompleteJSONMode(t *testing.T) {
	var got geminiRequest
	hits := 0
	resp := `{"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"pros\": []}"}]}}]}`
	srv := newTestServer(t, http.StatusOK, resp, &got, &hits)
	c := newTestClient(t, srv.URL)

	_, err := c.Complete(context.Background(), "p", generation.CallParams{Temperature: 0.7, MaxTokens: 1000, JSON: true}, "k")

	require.NoError(t, err)
	genCfg, ok := got.body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
}

func TestCompleteWrapsAPIError(t *testing.T) {
	var got geminiRequest
	hits := 0
	resp := `{"error": {"code": 429, "message": "Resource has been exhausted (e.g. check quota).", "status": "RESOURCE_EXHAUSTED"}}`
	srv := newTestServer(t, http.StatusTooManyRequests, resp, &got, &hits)
	c := newTestClient(t, srv.URL)

	_, err := c.Complete(context.Background(), "p", generation.CallParams{}, "k")

	var callErr *generation.CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, domain.ProviderGemini, callErr.Provider)
	assert.Equal(t, 1, hits, "no retries")
	assert.Equal(t, generation.CategoryRateLimited, generation.Classify(err, domain.ProviderGemini).Category)
}

func TestCompleteEmptyCandidates(t *testing.T) {
	var got geminiRequest
	hits := 0
	srv := newTestServer(t, http.StatusOK, `{"candidates": []}`, &got, &hits)
	c := newTestClient(t, srv.URL)

	_, err := c.Complete(context.Background(), "p", generation.CallParams{}, "k")
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestNewClientRequiresModel(t *testing.T) {
	_, err := NewClient(nil, config.ProviderConfig{}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
