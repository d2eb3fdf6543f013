package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/keyring"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/store"
)

// SettingsHandler manages the caller's stored provider API keys.
type SettingsHandler struct {
	keys   store.CredentialStore
	logger *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(keys store.CredentialStore, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SettingsHandler")
	}
	return &SettingsHandler{
		keys:   keys,
		logger: logger.With(slog.String("component", "settings_handler")),
	}
}

// GetAPIKeys handles GET /settings/api-keys. Every provider is listed; keys
// are masked and absent keys are empty.
func (h *SettingsHandler) GetAPIKeys(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	stored, err := h.keys.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "API 키를 불러오지 못했습니다.")
		return
	}

	resp := APIKeysResponse{APIKeys: make(map[string]string, len(domain.Providers))}
	for _, p := range domain.Providers {
		resp.APIKeys[string(p)] = ""
	}
	for _, k := range stored {
		resp.APIKeys[string(k.Provider)] = keyring.Mask(k.Key)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// SaveAPIKeys handles POST /settings/api-keys. All three keys are replaced
// together; an empty value clears the stored key. A value equal to the mask
// of the stored key keeps the stored key.
func (h *SettingsHandler) SaveAPIKeys(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req APIKeysRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	keys := map[domain.Provider]string{
		domain.ProviderOpenAI: strings.TrimSpace(req.OpenAI),
		domain.ProviderGroq:   strings.TrimSpace(req.Groq),
		domain.ProviderGemini: strings.TrimSpace(req.Gemini),
	}

	current, err := h.keys.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "API 키 저장 중 오류가 발생했습니다.")
		return
	}
	for _, k := range current {
		if posted := keys[k.Provider]; posted != "" && posted == keyring.Mask(k.Key) {
			keys[k.Provider] = k.Key
		}
	}

	if err := h.keys.PutAll(r.Context(), userID, keys); err != nil {
		HandleAPIError(w, r, err, "API 키 저장 중 오류가 발생했습니다.")
		return
	}

	configured := 0
	for _, k := range keys {
		if k != "" {
			configured++
		}
	}
	log.Info("api keys updated", slog.Int("configured", configured))
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Success: true,
		Message: "API 키가 저장되었습니다.",
	})
}
