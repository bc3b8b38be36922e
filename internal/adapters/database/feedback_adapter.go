package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/doug-martin/goqu/v9"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
	"github.com/arogyapath/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

// FeedbackAdapter implements feedback persistence in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a feedback record.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", fmt.Errorf("feedback is nil"))
	}

	record := goqu.Record{
		"id":               feedback.ID,
		"name":             feedback.Name,
		"email":            sql.NullString{String: feedback.Email, Valid: feedback.Email != ""},
		"rating":           feedback.Rating,
		"category":         feedback.Category,
		"message":          feedback.Message,
		"suggestions":      sql.NullString{String: feedback.Suggestions, Valid: feedback.Suggestions != ""},
		"client_timestamp": feedback.Timestamp,
		"user_agent":       sql.NullString{String: feedback.UserAgent, Valid: feedback.UserAgent != ""},
		"status":           feedback.Status,
		"created_at":       feedback.CreatedAt,
	}

	query, args, err := a.db.Insert("feedback").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create feedback", err)
	}

	return nil
}

// Stats returns aggregated rating statistics: the overall average, the
// per-rating distribution and per-category averages sorted by volume.
func (a *FeedbackAdapter) Stats(ctx context.Context) (*repositories.FeedbackStats, error) {
	stats := &repositories.FeedbackStats{
		RatingDistribution: map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
		ByCategory:         []repositories.CategoryStat{},
	}

	overallQuery, overallArgs, err := a.db.From("feedback").
		Select(
			goqu.COUNT(goqu.Star()),
			goqu.COALESCE(goqu.AVG(goqu.C("rating")), 0),
		).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build feedback stats query", err)
	}

	err = a.client.DB().QueryRowContext(ctx, overallQuery, overallArgs...).
		Scan(&stats.TotalFeedback, &stats.AverageRating)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate feedback", err)
	}
	stats.AverageRating = roundRating(stats.AverageRating)

	distQuery, distArgs, err := a.db.From("feedback").
		Select(goqu.C("rating"), goqu.COUNT(goqu.Star())).
		GroupBy(goqu.C("rating")).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rating distribution query", err)
	}

	distRows, err := a.client.DB().QueryContext(ctx, distQuery, distArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate rating distribution", err)
	}
	defer distRows.Close()

	for distRows.Next() {
		var rating int
		var count int64
		if err := distRows.Scan(&rating, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan rating distribution", err)
		}
		stats.RatingDistribution[fmt.Sprintf("%d", rating)] = count
	}
	if err := distRows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read rating distribution", err)
	}

	categoryQuery, categoryArgs, err := a.db.From("feedback").
		Select(
			goqu.C("category"),
			goqu.COUNT(goqu.Star()).As("count"),
			goqu.AVG(goqu.C("rating")).As("average_rating"),
		).
		GroupBy(goqu.C("category")).
		Order(goqu.I("count").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category stats query", err)
	}

	categoryRows, err := a.client.DB().QueryContext(ctx, categoryQuery, categoryArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate category stats", err)
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var stat repositories.CategoryStat
		if err := categoryRows.Scan(&stat.Category, &stat.Count, &stat.AverageRating); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category stats", err)
		}
		stat.AverageRating = roundRating(stat.AverageRating)
		stats.ByCategory = append(stats.ByCategory, stat)
	}
	if err := categoryRows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read category stats", err)
	}

	return stats, nil
}

// roundRating keeps average ratings at two decimal places.
func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
