package handlers

import (
	"net/http"

	"github.com/arogyapath/backend/internal/application/services"
)

// HealthHandler reports service liveness along with store counts.
type HealthHandler struct {
	hospitals *services.HospitalService
	auth      *services.AuthService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(hospitals *services.HospitalService, auth *services.AuthService) *HealthHandler {
	return &HealthHandler{
		hospitals: hospitals,
		auth:      auth,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	hospitalCount, err := h.hospitals.Count(r.Context())
	if err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "degraded",
		})
		return
	}

	userCount, err := h.auth.UserCount(r.Context())
	if err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "degraded",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"hospitals": hospitalCount,
		"users":     userCount,
	})
}
