package generation

import (
	"errors"
	"fmt"

	"github.com/ktgktg/blogsmith/internal/domain"
)

// Common errors returned by the generation package
var (
	// ErrProviderUnavailable is returned when a supported provider has no
	// client configured in this process. No network call is attempted.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMissingCredential is returned when no API key could be resolved for
	// the provider.
	ErrMissingCredential = errors.New("missing provider credential")

	// ErrInvalidResponse is returned when the provider response carries no text
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrUnknownOperation is returned for operations outside the prompt catalog
	ErrUnknownOperation = errors.New("unknown generation operation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// MissingFieldError reports a required prompt field that was absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// CallError is returned by provider clients when the provider rejects a call.
// It keeps whatever structure the SDK exposed so Classify can prefer it over
// parsing the message text.
type CallError struct {
	Provider   domain.Provider
	StatusCode int
	// Code, Type and Status mirror the provider's error object fields.
	Code    string
	Type    string
	Status  string
	Message string
	Err     error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s call failed with status %d: %s", e.Provider, e.StatusCode, e.Message)
}

func (e *CallError) Unwrap() error { return e.Err }

// payload renders the structured fields in the shape providers use for
// error bodies. It returns nil when the SDK exposed nothing structured.
func (e *CallError) payload() map[string]any {
	if e.Code == "" && e.Type == "" && e.Status == "" && e.Message == "" {
		return nil
	}
	inner := map[string]any{}
	if e.Code != "" {
		inner["code"] = e.Code
	}
	if e.Type != "" {
		inner["type"] = e.Type
	}
	if e.Status != "" {
		inner["status"] = e.Status
	}
	if e.Message != "" {
		inner["message"] = e.Message
	}
	return map[string]any{"error": inner}
}

// Category is the provider-agnostic classification of a failed call.
type Category string

// Failure categories.
const (
	CategoryQuotaExceeded     Category = "quota_exceeded"
	CategoryRateLimited       Category = "rate_limited"
	CategoryInvalidCredential Category = "invalid_credential"
	CategoryModelUnavailable  Category = "model_unavailable"
	CategoryUnknown           Category = "unknown"
)

// Failure is a classified provider failure, ready to show to a user.
type Failure struct {
	Category       Category
	Provider       domain.Provider
	Message        string
	RemediationURL string
	Err            error
}

func (f *Failure) Error() string {
	if f.RemediationURL != "" {
		return fmt.Sprintf("%s %s", f.Message, f.RemediationURL)
	}
	return f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

// AsFailure extracts a *Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
