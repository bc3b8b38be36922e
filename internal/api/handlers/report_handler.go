package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arogyapath/backend/internal/api/middleware"
	"github.com/arogyapath/backend/internal/application/services"
)

// ReportHandler handles AI report generation and retrieval.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GenerateReport handles POST /api/reports/generate
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var payload services.GenerateReportInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if user, ok := middleware.UserFromContext(r.Context()); ok {
		payload.User = user
	}

	result, err := h.service.Generate(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err, "report generation failed")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetReport handles GET /api/reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("id")
	if reportID == "" {
		respondWithError(w, http.StatusBadRequest, "report ID is required")
		return
	}

	report, err := h.service.GetByID(r.Context(), reportID)
	if err != nil {
		respondWithAppError(w, err, "failed to fetch report")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
