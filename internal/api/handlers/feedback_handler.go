package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arogyapath/backend/internal/application/services"
)

// FeedbackHandler handles feedback submissions and statistics.
type FeedbackHandler struct {
	service *services.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// SubmitFeedback handles POST /api/feedback
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload services.FeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	payload.UserAgent = r.UserAgent()

	feedbackID, err := h.service.Submit(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err, "failed to submit feedback")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"feedbackId": feedbackID,
	})
}

// GetStats handles GET /api/feedback/stats
func (h *FeedbackHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, err, "failed to aggregate feedback")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"overall": map[string]interface{}{
				"totalFeedback":      stats.TotalFeedback,
				"averageRating":      stats.AverageRating,
				"ratingDistribution": stats.RatingDistribution,
			},
			"byCategory": stats.ByCategory,
		},
	})
}
