package repositories

import (
	"context"

	"github.com/arogyapath/backend/internal/domain/entities"
)

// CategoryStat aggregates feedback per category.
type CategoryStat struct {
	Category      string  `json:"category"`
	Count         int64   `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

// FeedbackStats is the aggregated rating picture across all feedback.
type FeedbackStats struct {
	TotalFeedback      int64
	AverageRating      float64
	RatingDistribution map[string]int64
	ByCategory         []CategoryStat
}

// FeedbackRepository defines the interface for feedback data operations
type FeedbackRepository interface {
	// Create creates a new feedback record
	Create(ctx context.Context, feedback *entities.Feedback) error

	// Stats returns aggregated rating statistics
	Stats(ctx context.Context) (*FeedbackStats, error)
}
