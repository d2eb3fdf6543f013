package api

import (
	"net/http"

	"github.com/ktgktg/blogsmith/internal/api/shared"
	"github.com/ktgktg/blogsmith/internal/domain"
)

// ProviderStatus reports which providers have a client in this process.
// *generation.Pipeline implements it.
type ProviderStatus interface {
	Available(provider domain.Provider) bool
}

// HealthHandler reports liveness and configured integrations.
type HealthHandler struct {
	providers ProviderStatus
	storage   bool
}

// NewHealthHandler creates a HealthHandler. storage reports whether an
// article store is configured.
func NewHealthHandler(providers ProviderStatus, storage bool) *HealthHandler {
	return &HealthHandler{providers: providers, storage: storage}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Multi-LLM Blog Automation API"})
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Providers: make(map[string]bool, len(domain.Providers)),
		Storage:   h.storage,
	}
	for _, p := range domain.Providers {
		resp.Providers[string(p)] = h.providers != nil && h.providers.Available(p)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
