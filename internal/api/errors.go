package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/ktgktg/blogsmith/internal/platform/notion"
	"github.com/ktgktg/blogsmith/internal/redact"
	"github.com/ktgktg/blogsmith/internal/service"
	"github.com/ktgktg/blogsmith/internal/service/auth"
	"github.com/ktgktg/blogsmith/internal/store"
)

// statusByCategory maps classified provider failures to HTTP statuses.
var statusByCategory = map[generation.Category]int{
	generation.CategoryQuotaExceeded:     http.StatusPaymentRequired,
	generation.CategoryRateLimited:       http.StatusTooManyRequests,
	generation.CategoryInvalidCredential: http.StatusUnauthorized,
	generation.CategoryModelUnavailable:  http.StatusBadRequest,
	generation.CategoryUnknown:           http.StatusBadGateway,
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	if f, ok := generation.AsFailure(err); ok {
		if status, known := statusByCategory[f.Category]; known {
			return status
		}
		return http.StatusBadGateway
	}

	var missing *generation.MissingFieldError
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrUnsupportedProvider),
		errors.As(err, &missing),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidArticleKind),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrEmptyOwner),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrMissingCredential),
		errors.Is(err, service.ErrEmptyDraft),
		errors.Is(err, service.ErrNoDrafts):
		return http.StatusBadRequest

	// Configuration gaps on this server
	case errors.Is(err, generation.ErrProviderUnavailable),
		errors.Is(err, service.ErrStorageUnavailable),
		errors.Is(err, notion.ErrNotConfigured):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	// Provider failures are already worded for users; only keys are masked.
	if f, ok := generation.AsFailure(err); ok {
		return redact.Credentials(f.Message)
	}

	var missing *generation.MissingFieldError
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "아이디 또는 비밀번호가 올바르지 않습니다."

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, domain.ErrUnsupportedProvider):
		return "지원하지 않는 모델입니다."

	case errors.As(err, &missing):
		return fmt.Sprintf("필수 항목이 누락되었습니다: %s", missing.Field)

	case errors.Is(err, generation.ErrMissingCredential):
		return "API 키가 설정되지 않았습니다. 설정에서 API 키를 등록해주세요."

	case errors.Is(err, generation.ErrProviderUnavailable):
		return "선택한 모델을 현재 사용할 수 없습니다."

	case errors.Is(err, service.ErrStorageUnavailable),
		errors.Is(err, notion.ErrNotConfigured):
		return "저장소가 설정되지 않았습니다."

	case errors.Is(err, service.ErrEmptyDraft):
		return "분석할 초안이 비어 있습니다."

	case errors.Is(err, service.ErrNoDrafts):
		return "최소 하나의 초안이 필요합니다."

	case errors.Is(err, domain.ErrInvalidArticleKind):
		return "Invalid article kind"

	case errors.Is(err, domain.ErrEmptyContent):
		return "Content cannot be empty"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err. A
// non-empty fallback replaces the generic message for unexpected errors.
// Classified provider failures also carry their category and remediation
// link.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if f, ok := generation.AsFailure(err); ok {
		opts = append(opts, shared.WithFailureCategory(string(f.Category), f.RemediationURL))
	}
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "dive":
		return "invalid item"
	default:
		return "validation failed"
	}
}
