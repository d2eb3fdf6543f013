package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/ktgktg/blogsmith/internal/mocks"
	"github.com/ktgktg/blogsmith/internal/service"
	"github.com/ktgktg/blogsmith/internal/store"
	"github.com/stretchr/testify/require"
)

const testUser = "gardener"

// testHarness wires real generation services over mock providers and stores.
type testHarness struct {
	openai   *mocks.MockCompleter
	gemini   *mocks.MockCompleter
	archiver *mocks.MockArchiver
	articles *mocks.MockArticleRepository
	keys     *store.MemoryCredentialStore
	service  *service.GenerationService
	pipeline *generation.Pipeline
	logger   *slog.Logger
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		openai:   mocks.NewMockCompleterWithText("OpenAI 응답"),
		gemini:   mocks.NewMockCompleterWithText("Gemini 응답"),
		archiver: &mocks.MockArchiver{},
		articles: &mocks.MockArticleRepository{},
		keys:     store.NewMemoryCredentialStore(),
		logger:   slog.Default(),
	}

	prompts, err := generation.NewPromptBuilder()
	require.NoError(t, err)
	sans, err := generation.NewSanitizers(generation.DefaultProfiles())
	require.NoError(t, err)
	adapter := generation.NewAdapter(
		map[domain.Provider]generation.Completer{
			domain.ProviderOpenAI: h.openai,
			domain.ProviderGemini: h.gemini,
		},
		map[domain.Provider]string{
			domain.ProviderOpenAI: "sk-default-key",
			domain.ProviderGemini: "AIza-default",
		},
	)
	h.pipeline = generation.NewPipeline(prompts, adapter, sans, h.logger)

	h.service, err = service.NewGenerationService(service.GenerationServiceConfig{
		Generator:         h.pipeline,
		Credentials:       service.NewCredentialResolver(h.keys, h.logger),
		Archiver:          h.archiver,
		Articles:          h.articles,
		SynthesisProvider: domain.ProviderGemini,
		Logger:            h.logger,
	})
	require.NoError(t, err)
	return h
}

// newRequest builds a JSON request. A non-empty user is placed in the
// context the way the auth middleware does.
func newRequest(t *testing.T, method, target, user string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req = req.WithContext(shared.WithUserID(req.Context(), user))
	}
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

// newServiceWithoutStorage builds a service with no article store, as the
// server runs when no Notion article database is configured.
func newServiceWithoutStorage(t *testing.T) *service.GenerationService {
	t.Helper()
	h := newTestHarness(t)
	svc, err := service.NewGenerationService(service.GenerationServiceConfig{
		Generator:         h.pipeline,
		SynthesisProvider: domain.ProviderGemini,
		Logger:            h.logger,
	})
	require.NoError(t, err)
	return svc
}
