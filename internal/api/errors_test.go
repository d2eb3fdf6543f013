package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/ktgktg/blogsmith/internal/platform/notion"
	"github.com/ktgktg/blogsmith/internal/service"
	"github.com/ktgktg/blogsmith/internal/service/auth"
	"github.com/ktgktg/blogsmith/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failure(c generation.Category) error {
	return &generation.Failure{Category: c, Provider: domain.ProviderOpenAI, Message: "provider said no"}
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"wrapped authentication error", fmt.Errorf("failed to authenticate: %w", auth.ErrInvalidToken), http.StatusUnauthorized},
		{"invalid login", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unsupported provider", fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, "claude"), http.StatusBadRequest},
		{"missing field", &generation.MissingFieldError{Field: "keyword"}, http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyContent), http.StatusBadRequest},
		{"invalid kind", domain.ErrInvalidArticleKind, http.StatusBadRequest},
		{"missing credential", fmt.Errorf("%w: groq", generation.ErrMissingCredential), http.StatusBadRequest},
		{"empty draft", service.ErrEmptyDraft, http.StatusBadRequest},
		{"no drafts", service.ErrNoDrafts, http.StatusBadRequest},
		{"provider unavailable", fmt.Errorf("%w: gemini", generation.ErrProviderUnavailable), http.StatusServiceUnavailable},
		{"storage unavailable", service.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"notion not configured", fmt.Errorf("list: %w", notion.ErrNotConfigured), http.StatusServiceUnavailable},
		{"not found", store.ErrCredentialNotFound, http.StatusNotFound},
		{"quota exceeded", failure(generation.CategoryQuotaExceeded), http.StatusPaymentRequired},
		{"rate limited", failure(generation.CategoryRateLimited), http.StatusTooManyRequests},
		{"invalid credential", failure(generation.CategoryInvalidCredential), http.StatusUnauthorized},
		{"model unavailable", failure(generation.CategoryModelUnavailable), http.StatusBadRequest},
		{"unknown provider failure", failure(generation.CategoryUnknown), http.StatusBadGateway},
		{"unknown error", errors.New("unknown error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"refresh token", auth.ErrExpiredRefreshToken, "Invalid refresh token"},
		{"missing field", &generation.MissingFieldError{Field: "topic"}, "필수 항목이 누락되었습니다: topic"},
		{"unsupported provider", domain.ErrUnsupportedProvider, "지원하지 않는 모델입니다."},
		{"provider failure", failure(generation.CategoryRateLimited), "provider said no"},
		{"validation", fmt.Errorf("%w: bad", domain.ErrValidation), "Validation error"},
		{"internal details", errors.New("pq: relation users does not exist"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMessage, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIErrorCarriesFailureCategory(t *testing.T) {
	err := &generation.Failure{
		Category:       generation.CategoryQuotaExceeded,
		Provider:       domain.ProviderOpenAI,
		Message:        "OpenAI API 할당량이 초과되었습니다.",
		RemediationURL: "https://platform.openai.com/usage",
	}
	req := httptest.NewRequest(http.MethodPost, "/api/generate/title", nil)
	w := httptest.NewRecorder()

	HandleAPIError(w, req, fmt.Errorf("generate title: %w", err), "fallback")

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OpenAI API 할당량이 초과되었습니다.", body.Error)
	assert.Equal(t, "quota_exceeded", body.Category)
	assert.Equal(t, "https://platform.openai.com/usage", body.RemediationURL)
}

func TestHandleAPIErrorFallbackOnlyForInternalErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze/draft", nil)

	w := httptest.NewRecorder()
	HandleAPIError(w, req, errors.New("boom"), "초안 분석 중 오류가 발생했습니다.")
	assert.Contains(t, w.Body.String(), "초안 분석 중 오류가 발생했습니다.")

	w = httptest.NewRecorder()
	HandleAPIError(w, req, service.ErrEmptyDraft, "초안 분석 중 오류가 발생했습니다.")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "분석할 초안이 비어 있습니다.")
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&TitleRequest{Model: "openai"})
	require.Error(t, err)
	assert.Equal(t, "Invalid keyword: required field", SanitizeValidationError(err))

	err = shared.ValidateRequest(&FinalRequest{
		BriefFields: BriefFields{Topic: "t", Intent: "i", Audience: "a", Tone: "n"},
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid drafts: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}
