package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ktgktg/blogsmith/internal/api/middleware"
	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/service/auth"
)

// SessionMaxAge is the lifetime of the session cookie.
const SessionMaxAge = 24 * time.Hour

// Authenticator issues session tokens. *auth.Service implements it.
type Authenticator interface {
	Login(ctx context.Context, id, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
	Domain string
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator Authenticator
	cookie        CookieConfig
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authenticator Authenticator, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		cookie:        cookie,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /auth/login. On success the access token is set as an
// HttpOnly session cookie and returned in the body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	pair, err := h.authenticator.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				GetSafeErrorMessage(err), err, shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "로그인 처리 중 오류가 발생했습니다.")
		return
	}

	h.setSessionCookie(w, pair.AccessToken, int(SessionMaxAge.Seconds()))
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Success:      true,
		Message:      "로그인 성공",
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout handles POST /auth/logout by expiring the session cookie. Tokens
// are stateless, so nothing else is revoked.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Success: true,
		Message: "로그아웃 되었습니다.",
	})
}

// Check handles GET /auth/check. It runs behind the auth middleware.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CheckResponse{Authenticated: true, UserID: userID})
}

// RefreshToken handles POST /auth/refresh.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	pair, err := h.authenticator.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRefreshToken),
			errors.Is(err, auth.ErrExpiredRefreshToken),
			errors.Is(err, auth.ErrWrongTokenType),
			errors.Is(err, auth.ErrInvalidToken):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Invalid refresh token", err, shared.WithElevatedLogLevel())
		default:
			HandleAPIError(w, r, err, "Failed to refresh token")
		}
		return
	}

	h.setSessionCookie(w, pair.AccessToken, int(SessionMaxAge.Seconds()))
	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// setSessionCookie writes the session cookie. SameSite=None lets the
// separately hosted frontend send it cross-site, which requires Secure.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	sameSite := http.SameSiteNoneMode
	if !h.cookie.Secure {
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: sameSite,
	})
}
