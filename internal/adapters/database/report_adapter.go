package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
	"github.com/arogyapath/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

var reportColumns = []interface{}{
	"id", "user_id", "prediction", "confidence", "llm_content",
	"artifact_path", "storage", "status", "created_at",
}

// ReportAdapter implements report persistence in Postgres.
type ReportAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReportAdapter creates a new report adapter.
func NewReportAdapter(client *postgres.Client) repositories.ReportRepository {
	return &ReportAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new report record.
func (a *ReportAdapter) Create(ctx context.Context, report *entities.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	var userID sql.NullString
	if report.UserID != nil {
		userID = sql.NullString{String: *report.UserID, Valid: true}
	}

	query, args, err := a.db.Insert("reports").Rows(goqu.Record{
		"id":            report.ID,
		"user_id":       userID,
		"prediction":    []byte(report.Prediction),
		"confidence":    report.Confidence,
		"llm_content":   []byte(report.LLMContent),
		"artifact_path": report.ArtifactPath,
		"storage":       string(report.Storage),
		"status":        string(report.Status),
		"created_at":    report.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build report insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create report", err)
	}

	return nil
}

// GetByID retrieves a report by ID.
func (a *ReportAdapter) GetByID(ctx context.Context, id string) (*entities.Report, error) {
	query, args, err := a.db.From("reports").
		Select(reportColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build report query", err)
	}

	report := &entities.Report{}
	var (
		userID     sql.NullString
		prediction []byte
		llmContent []byte
		storage    string
		status     string
	)

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&report.ID,
		&userID,
		&prediction,
		&report.Confidence,
		&llmContent,
		&report.ArtifactPath,
		&storage,
		&status,
		&report.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("report with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get report", err)
	}

	if userID.Valid {
		report.UserID = &userID.String
	}
	report.Prediction = prediction
	report.LLMContent = llmContent
	report.Storage = entities.StorageKind(storage)
	report.Status = entities.ReportStatus(status)

	return report, nil
}

// UpdateArtifact sets the artifact path and status after rendering.
func (a *ReportAdapter) UpdateArtifact(ctx context.Context, id, artifactPath string, status entities.ReportStatus) error {
	return a.update(ctx, id, goqu.Record{
		"artifact_path": artifactPath,
		"status":        string(status),
	})
}

// UpdateStatus sets only the report status.
func (a *ReportAdapter) UpdateStatus(ctx context.Context, id string, status entities.ReportStatus) error {
	return a.update(ctx, id, goqu.Record{"status": string(status)})
}

func (a *ReportAdapter) update(ctx context.Context, id string, record goqu.Record) error {
	query, args, err := a.db.Update("reports").
		Set(record).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build report update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update report", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("report with id %s not found", id))
	}

	return nil
}
