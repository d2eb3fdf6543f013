package service

import "errors"

// Common service errors. The API layer maps them to HTTP status codes.
var (
	// ErrStorageUnavailable indicates that no article store is configured.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrStorageUnavailable = errors.New("article storage is not configured")

	// ErrEmptyDraft indicates an analysis request without draft text.
	ErrEmptyDraft = errors.New("draft text cannot be empty")

	// ErrNoDrafts indicates a synthesis request without any prior drafts.
	ErrNoDrafts = errors.New("at least one draft is required")
)
