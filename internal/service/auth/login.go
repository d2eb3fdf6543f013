package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ktgktg/blogsmith/internal/platform/logger"
)

// CredentialChecker verifies a login id and password against the user
// database. It has no side effects.
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, id, secret string) (bool, error)
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Service issues session tokens for users known to the CredentialChecker.
type Service struct {
	checker       CredentialChecker
	tokens        JWTService
	tokenLifetime time.Duration
	timeFunc      func() time.Time
}

// NewService creates an authentication service. tokenLifetime is used only
// to report the access token expiry to clients.
func NewService(checker CredentialChecker, tokens JWTService, tokenLifetime time.Duration) *Service {
	return &Service{
		checker:       checker,
		tokens:        tokens,
		tokenLifetime: tokenLifetime,
		timeFunc:      time.Now,
	}
}

// Login checks id and password and issues a token pair. A mismatch returns
// ErrInvalidCredentials; lookup failures are returned wrapped.
func (s *Service) Login(ctx context.Context, id, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, nil)
	id = strings.TrimSpace(id)

	ok, err := s.checker.CheckCredentials(ctx, id, password)
	if err != nil {
		return nil, fmt.Errorf("failed to check credentials: %w", err)
	}
	if !ok {
		log.Debug("login rejected", slog.String("user_id", id))
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Info("user logged in", slog.String("user_id", id))
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, claims.UserID)
}

// Authenticate returns the user id carried by a valid access token.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (string, error) {
	claims, err := s.tokens.ValidateToken(ctx, accessToken)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (s *Service) issue(ctx context.Context, userID string) (*TokenPair, error) {
	access, err := s.tokens.GenerateToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    s.timeFunc().Add(s.tokenLifetime),
	}, nil
}
