package api

import (
	"log/slog"
	"net/http"

	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/redact"
)

// getUserIDFromContext extracts the authenticated login id from the request context.
// The user ID is expected to be placed in the context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (string, bool) {
	return shared.UserIDFromContext(r.Context())
}

// requireUser returns the authenticated user or writes a 401 response.
func requireUser(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return "", false
	}
	return userID, true
}

// decodeAndValidate reads the JSON body into req and validates it. On
// failure it writes a 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}, log *slog.Logger) bool {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	if err := shared.DecodeJSON(r, req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// parseProvider resolves the model tag of a request. On failure it writes a
// 400 response and returns false.
func parseProvider(w http.ResponseWriter, r *http.Request, model string) (domain.Provider, bool) {
	provider, err := domain.ParseProvider(model)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return "", false
	}
	return provider, true
}
