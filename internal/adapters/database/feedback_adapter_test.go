package database_test

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyapath/backend/internal/adapters/database"
	"github.com/arogyapath/backend/internal/domain/repositories"
	"github.com/arogyapath/backend/internal/infrastructure/clients/postgres"
)

func newFeedbackAdapter(t *testing.T) (repositories.FeedbackRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewFeedbackAdapter(postgres.NewClientFromDB(db)), mock
}

func TestFeedbackAdapter_Stats_RoundsAverages(t *testing.T) {
	adapter, mock := newFeedbackAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "feedback"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "coalesce"}).
			AddRow(int64(3), 4.333333333333333))
	mock.ExpectQuery(regexp.QuoteMeta(`GROUP BY "rating"`)).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).
			AddRow(4, int64(2)).
			AddRow(5, int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`GROUP BY "category"`)).
		WillReturnRows(sqlmock.NewRows([]string{"category", "count", "average_rating"}).
			AddRow("search", int64(2), 4.666666666666667).
			AddRow("general", int64(1), 3.0))

	stats, err := adapter.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalFeedback)
	assert.Equal(t, 4.33, stats.AverageRating)
	assert.Equal(t, int64(2), stats.RatingDistribution["4"])
	assert.Equal(t, int64(0), stats.RatingDistribution["1"])
	require.Len(t, stats.ByCategory, 2)
	assert.Equal(t, 4.67, stats.ByCategory[0].AverageRating)
	assert.Equal(t, 3.0, stats.ByCategory[1].AverageRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}
