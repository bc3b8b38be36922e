package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
	"github.com/arogyapath/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

var hospitalColumns = []interface{}{
	"id", "name", "address", "city", "district", "state", "pincode",
	"phone", "specialty", "type", "pmjay_empaneled", "latitude",
	"longitude", "created_at", "updated_at",
}

// HospitalAdapter implements the HospitalRepository interface
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Search retrieves hospitals matching the filter. Pagination happens at the
// store level, before any distance filtering in the service layer.
func (a *HospitalAdapter) Search(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	ds := a.db.From("hospitals").Select(hospitalColumns...)

	conds := []goqu.Expression{}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conds = append(conds, goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("city").ILike(pattern),
			goqu.C("address").ILike(pattern),
			goqu.C("state").ILike(pattern),
		))
	}
	if filter.State != "" {
		conds = append(conds, goqu.C("state").ILike("%"+filter.State+"%"))
	}
	if filter.District != "" {
		conds = append(conds, goqu.C("district").ILike("%"+filter.District+"%"))
	}
	if filter.Empaneled != nil {
		conds = append(conds, goqu.C("pmjay_empaneled").Eq(*filter.Empaneled))
	}
	if filter.Type != "" {
		conds = append(conds, goqu.C("type").Eq(string(filter.Type)))
	}

	if len(conds) > 0 {
		ds = ds.Where(conds...)
	}

	ds = ds.Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hospital search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search hospitals", err)
	}
	defer rows.Close()

	return scanHospitals(rows)
}

// GetByID retrieves a hospital by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	query, args, err := a.db.From("hospitals").
		Select(hospitalColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hospital query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	hospital, err := scanHospital(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}

	return hospital, nil
}

// List retrieves up to limit hospitals in store order
func (a *HospitalAdapter) List(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	ds := a.db.From("hospitals").
		Select(hospitalColumns...).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hospital list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospitals", err)
	}
	defer rows.Close()

	return scanHospitals(rows)
}

// DistinctStates returns sorted distinct non-empty state names
func (a *HospitalAdapter) DistinctStates(ctx context.Context) ([]string, error) {
	query, args, err := a.db.From("hospitals").
		SelectDistinct(goqu.C("state")).
		Where(goqu.C("state").Neq("")).
		Order(goqu.C("state").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build states query", err)
	}

	return a.queryStrings(ctx, query, args, "failed to fetch states")
}

// DistinctDistricts returns sorted distinct district names for a
// case-insensitive state match
func (a *HospitalAdapter) DistinctDistricts(ctx context.Context, state string) ([]string, error) {
	query, args, err := a.db.From("hospitals").
		SelectDistinct(goqu.C("district")).
		Where(
			goqu.C("state").ILike("%"+state+"%"),
			goqu.C("district").Neq(""),
		).
		Order(goqu.C("district").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build districts query", err)
	}

	return a.queryStrings(ctx, query, args, "failed to fetch districts")
}

// Count returns the number of hospital records
func (a *HospitalAdapter) Count(ctx context.Context) (int64, error) {
	count, err := a.db.From("hospitals").CountContext(ctx)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count hospitals", err)
	}
	return count, nil
}

// DeleteAll removes every hospital record
func (a *HospitalAdapter) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := a.db.Delete("hospitals").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build hospital delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to delete hospitals", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return deleted, nil
}

// InsertBatch inserts a batch of hospitals in a single statement
func (a *HospitalAdapter) InsertBatch(ctx context.Context, hospitals []*entities.Hospital) (int, error) {
	if len(hospitals) == 0 {
		return 0, nil
	}

	records := make([]interface{}, 0, len(hospitals))
	for _, h := range hospitals {
		touchTimestamps(h)
		records = append(records, goqu.Record{
			"id":              h.ID,
			"name":            h.Name,
			"address":         h.Address,
			"city":            h.City,
			"district":        h.District,
			"state":           h.State,
			"pincode":         h.Pincode,
			"phone":           h.Phone,
			"specialty":       h.Specialty,
			"type":            string(h.Type),
			"pmjay_empaneled": h.Empaneled,
			"latitude":        nullFloat(h.Latitude),
			"longitude":       nullFloat(h.Longitude),
			"created_at":      h.CreatedAt,
			"updated_at":      h.UpdatedAt,
		})
	}

	query, args, err := a.db.Insert("hospitals").Rows(records...).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build hospital insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return 0, apperrors.NewInternalError("failed to insert hospitals", err)
	}

	return len(hospitals), nil
}

func (a *HospitalAdapter) queryStrings(ctx context.Context, query string, args []interface{}, errMsg string) ([]string, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError(errMsg, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, apperrors.NewInternalError(errMsg, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError(errMsg, err)
	}

	return values, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHospital(row rowScanner) (*entities.Hospital, error) {
	h := &entities.Hospital{}
	var (
		hType    string
		lat, lng sql.NullFloat64
	)

	err := row.Scan(
		&h.ID, &h.Name, &h.Address, &h.City, &h.District, &h.State,
		&h.Pincode, &h.Phone, &h.Specialty, &hType, &h.Empaneled,
		&lat, &lng, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Type = entities.OwnershipType(hType)
	if lat.Valid {
		h.Latitude = &lat.Float64
	}
	if lng.Valid {
		h.Longitude = &lng.Float64
	}
	return h, nil
}

func scanHospitals(rows *sql.Rows) ([]*entities.Hospital, error) {
	hospitals := []*entities.Hospital{}
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital row", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read hospital rows", err)
	}
	return hospitals, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// touchTimestamps fills zero create/update times before insert.
func touchTimestamps(h *entities.Hospital) {
	now := time.Now().UTC()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	if h.UpdatedAt.IsZero() {
		h.UpdatedAt = now
	}
}
