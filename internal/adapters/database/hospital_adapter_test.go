package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyapath/backend/internal/adapters/database"
	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
	"github.com/arogyapath/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

var hospitalRows = []string{
	"id", "name", "address", "city", "district", "state", "pincode",
	"phone", "specialty", "type", "pmjay_empaneled", "latitude",
	"longitude", "created_at", "updated_at",
}

func newHospitalAdapter(t *testing.T) (repositories.HospitalRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewHospitalAdapter(postgres.NewClientFromDB(db)), mock
}

func TestHospitalAdapter_GetByID(t *testing.T) {
	adapter, mock := newHospitalAdapter(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "hospitals"`)).
		WillReturnRows(sqlmock.NewRows(hospitalRows).AddRow(
			"h1", "AIIMS Delhi", "New Delhi, Delhi", "New Delhi", "New Delhi",
			"Delhi", "110029", "011-26588500", "Multi-specialty", "Government",
			true, 28.5672, 77.2100, now, now,
		))

	hospital, err := adapter.GetByID(context.Background(), "h1")
	require.NoError(t, err)

	assert.Equal(t, "AIIMS Delhi", hospital.Name)
	assert.Equal(t, entities.OwnershipGovernment, hospital.Type)
	require.NotNil(t, hospital.Latitude)
	assert.Equal(t, 28.5672, *hospital.Latitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapter_GetByID_NotFound(t *testing.T) {
	adapter, mock := newHospitalAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "hospitals"`)).
		WillReturnRows(sqlmock.NewRows(hospitalRows))

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestHospitalAdapter_Search_NullCoordinates(t *testing.T) {
	adapter, mock := newHospitalAdapter(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "hospitals"`)).
		WillReturnRows(sqlmock.NewRows(hospitalRows).AddRow(
			"h2", "District Hospital", "Solan, Himachal Pradesh", "Solan", "Solan",
			"Himachal Pradesh", "173212", "", "General", "Government",
			true, nil, nil, now, now,
		))

	hospitals, err := adapter.Search(context.Background(), repositories.HospitalFilter{
		State: "Himachal Pradesh",
		Limit: 20,
	})
	require.NoError(t, err)

	require.Len(t, hospitals, 1)
	assert.Nil(t, hospitals[0].Latitude)
	assert.Nil(t, hospitals[0].Longitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapter_Count(t *testing.T) {
	adapter, mock := newHospitalAdapter(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(742)))

	count, err := adapter.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(742), count)
}

func TestHospitalAdapter_DeleteAll(t *testing.T) {
	adapter, mock := newHospitalAdapter(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "hospitals"`)).
		WillReturnResult(sqlmock.NewResult(0, 742))

	deleted, err := adapter.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(742), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapter_DistinctStates(t *testing.T) {
	adapter, mock := newHospitalAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT "state"`)).
		WillReturnRows(sqlmock.NewRows([]string{"state"}).
			AddRow("Delhi").
			AddRow("Himachal Pradesh"))

	states, err := adapter.DistinctStates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Delhi", "Himachal Pradesh"}, states)
}

func TestHospitalAdapter_InsertBatch(t *testing.T) {
	adapter, mock := newHospitalAdapter(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "hospitals"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	lat, lng := 28.5672, 77.2100
	inserted, err := adapter.InsertBatch(context.Background(), []*entities.Hospital{
		{ID: "h1", Name: "AIIMS Delhi", State: "Delhi", Type: entities.OwnershipGovernment, Latitude: &lat, Longitude: &lng},
		{ID: "h2", Name: "District Hospital", State: "Himachal Pradesh", Type: entities.OwnershipGovernment},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
