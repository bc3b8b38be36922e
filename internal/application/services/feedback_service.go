package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

// FeedbackInput is the feedback submission payload.
type FeedbackInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Rating      int    `json:"rating"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	Suggestions string `json:"suggestions"`
	Timestamp   string `json:"timestamp"`
	UserAgent   string `json:"-"`
}

// FeedbackService collects product feedback and serves aggregates.
type FeedbackService struct {
	repo repositories.FeedbackRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(repo repositories.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Submit validates and stores one feedback record, returning its ID.
// Validation runs before any store write: an invalid submission never
// reaches the repository.
func (s *FeedbackService) Submit(ctx context.Context, input FeedbackInput) (string, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return "", apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Message) == "" {
		return "", apperrors.NewValidationError("message is required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Anonymous"
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "general"
	}

	feedback := &entities.Feedback{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       strings.TrimSpace(input.Email),
		Rating:      input.Rating,
		Category:    category,
		Message:     strings.TrimSpace(input.Message),
		Suggestions: strings.TrimSpace(input.Suggestions),
		Timestamp:   input.Timestamp,
		UserAgent:   input.UserAgent,
		Status:      "new",
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return "", err
	}

	return feedback.ID, nil
}

// Stats returns aggregated feedback statistics.
func (s *FeedbackService) Stats(ctx context.Context) (*repositories.FeedbackStats, error) {
	return s.repo.Stats(ctx)
}
