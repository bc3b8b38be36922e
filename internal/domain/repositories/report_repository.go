package repositories

import (
	"context"

	"github.com/arogyapath/backend/internal/domain/entities"
)

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	// Create persists a new report record
	Create(ctx context.Context, report *entities.Report) error

	// GetByID retrieves a report by ID
	GetByID(ctx context.Context, id string) (*entities.Report, error)

	// UpdateArtifact sets the artifact path and status after rendering
	UpdateArtifact(ctx context.Context, id, artifactPath string, status entities.ReportStatus) error

	// UpdateStatus sets only the report status
	UpdateStatus(ctx context.Context, id string, status entities.ReportStatus) error
}
