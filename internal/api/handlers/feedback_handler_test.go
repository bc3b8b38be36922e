package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyapath/backend/internal/api/handlers"
	"github.com/arogyapath/backend/internal/application/services"
	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
)

type stubFeedbackRepo struct {
	created []*entities.Feedback
	stats   *repositories.FeedbackStats
}

func (s *stubFeedbackRepo) Create(ctx context.Context, feedback *entities.Feedback) error {
	s.created = append(s.created, feedback)
	return nil
}

func (s *stubFeedbackRepo) Stats(ctx context.Context) (*repositories.FeedbackStats, error) {
	return s.stats, nil
}

func TestFeedbackHandler_SubmitFeedback_Success(t *testing.T) {
	repo := &stubFeedbackRepo{}
	handler := handlers.NewFeedbackHandler(services.NewFeedbackService(repo))

	body := `{"rating":5,"message":"Found a hospital quickly","category":"search"}`
	req := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitFeedback(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, true, response["success"])
	assert.NotEmpty(t, response["feedbackId"])
}

func TestFeedbackHandler_SubmitFeedback_InvalidRating(t *testing.T) {
	repo := &stubFeedbackRepo{}
	handler := handlers.NewFeedbackHandler(services.NewFeedbackService(repo))

	body := `{"rating":6,"message":"out of range"}`
	req := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitFeedback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.created)
}

func TestFeedbackHandler_SubmitFeedback_BlankMessage(t *testing.T) {
	repo := &stubFeedbackRepo{}
	handler := handlers.NewFeedbackHandler(services.NewFeedbackService(repo))

	body := `{"rating":4,"message":"   "}`
	req := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitFeedback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.created)
}

func TestFeedbackHandler_GetStats(t *testing.T) {
	repo := &stubFeedbackRepo{
		stats: &repositories.FeedbackStats{
			TotalFeedback:      12,
			AverageRating:      4.25,
			RatingDistribution: map[string]int64{"1": 0, "2": 1, "3": 2, "4": 3, "5": 6},
			ByCategory: []repositories.CategoryStat{
				{Category: "search", Count: 8, AverageRating: 4.5},
				{Category: "general", Count: 4, AverageRating: 3.75},
			},
		},
	}
	handler := handlers.NewFeedbackHandler(services.NewFeedbackService(repo))

	req := httptest.NewRequest("GET", "/api/feedback/stats", nil)
	w := httptest.NewRecorder()

	handler.GetStats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Overall struct {
				TotalFeedback      int64            `json:"totalFeedback"`
				AverageRating      float64          `json:"averageRating"`
				RatingDistribution map[string]int64 `json:"ratingDistribution"`
			} `json:"overall"`
			ByCategory []repositories.CategoryStat `json:"byCategory"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.True(t, response.Success)
	assert.Equal(t, int64(12), response.Data.Overall.TotalFeedback)
	assert.Equal(t, 4.25, response.Data.Overall.AverageRating)
	assert.Equal(t, int64(6), response.Data.Overall.RatingDistribution["5"])
	require.Len(t, response.Data.ByCategory, 2)
	assert.Equal(t, "search", response.Data.ByCategory[0].Category)
}
