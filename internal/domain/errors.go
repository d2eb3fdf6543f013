// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyOwner is returned when an article has no owner.
	ErrEmptyOwner = errors.New("owner cannot be empty")

	// ErrInvalidArticleKind is returned for kinds other than draft and final.
	ErrInvalidArticleKind = errors.New("invalid article kind")

	// ErrUnsupportedProvider is returned when a provider tag is not one of
	// the supported services.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
