package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/providers"
	"github.com/arogyapath/backend/internal/domain/repositories"
	"github.com/arogyapath/backend/internal/infrastructure/clients/groq"
	"github.com/arogyapath/backend/pkg/config"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

// GenerateReportInput is the report generation request. Prediction is the
// classifier payload, persisted verbatim; ImageData is an optional data URI
// embedded in the rendered page.
type GenerateReportInput struct {
	Prediction json.RawMessage `json:"prediction"`
	Mode       string          `json:"mode"`
	Notes      string          `json:"notes"`
	ImageData  string          `json:"imageData"`
	Language   string          `json:"language"`
	User       *entities.User  `json:"-"`
}

// GenerateReportResult points the caller at the stored report.
type GenerateReportResult struct {
	ReportID    string `json:"reportId"`
	ViewURL     string `json:"viewUrl"`
	DownloadURL string `json:"downloadUrl"`
}

// ReportService runs the report pipeline: derive severity from the
// prediction, obtain a patient-friendly narrative from the language model,
// persist the record and render the HTML artifact.
type ReportService struct {
	repo        repositories.ReportRepository
	model       providers.ReportModelProvider
	uploadsDir  string
	frontendURL string
	backendURL  string
}

// NewReportService creates a new report service.
func NewReportService(
	repo repositories.ReportRepository,
	model providers.ReportModelProvider,
	storage *config.StorageConfig,
	links *config.LinksConfig,
) *ReportService {
	return &ReportService{
		repo:        repo,
		model:       model,
		uploadsDir:  storage.UploadsDir,
		frontendURL: links.FrontendURL,
		backendURL:  links.BackendURL,
	}
}

// Generate produces a report from a classifier prediction. A model failure
// downgrades the narrative to a fixed fallback text rather than failing the
// request; only persistence and rendering errors are fatal. A report that
// persists but fails to render is marked failed and the error surfaces.
func (s *ReportService) Generate(ctx context.Context, input GenerateReportInput) (*GenerateReportResult, error) {
	if len(input.Prediction) == 0 {
		return nil, apperrors.NewValidationError("prediction required")
	}

	var prediction entities.Prediction
	if err := json.Unmarshal(input.Prediction, &prediction); err != nil {
		return nil, apperrors.NewValidationError("prediction must be a JSON object")
	}

	language := groq.NormalizeLanguage(input.Language)
	severity := SeverityFromConfidence(prediction.Confidence)
	prompt := groq.BuildUserPrompt(language, prediction.ConditionName(), prediction.Confidence, severity.Level, input.Notes)

	llmText, err := s.model.Complete(ctx, language, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("model call failed, using fallback narrative")
		llmText = groq.ErrorFallbackText(language)
	}
	if llmText == "" {
		llmText = groq.ErrorFallbackText(language)
	}

	llmContent, err := json.Marshal(map[string]string{"raw": llmText})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode report narrative", err)
	}

	report := &entities.Report{
		ID:         uuid.New().String(),
		Prediction: input.Prediction,
		Confidence: prediction.Confidence,
		LLMContent: llmContent,
		Storage:    entities.StorageLocal,
		Status:     entities.ReportStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if input.User != nil {
		report.UserID = &input.User.ID
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	patientName := ""
	if input.User != nil {
		patientName = input.User.FullName()
	}

	html := RenderHTMLReport(RenderParams{
		Prediction:  prediction,
		LLMText:     llmText,
		Severity:    severity,
		ReportID:    report.ID,
		PatientName: patientName,
		ImageData:   input.ImageData,
		Language:    language,
		GeneratedAt: report.CreatedAt,
	})

	artifactPath, err := s.writeArtifact(report.ID, html)
	if err != nil {
		if statusErr := s.repo.UpdateStatus(ctx, report.ID, entities.ReportStatusFailed); statusErr != nil {
			log.Error().Err(statusErr).Str("report_id", report.ID).Msg("failed to mark report as failed")
		}
		return nil, err
	}

	if err := s.repo.UpdateArtifact(ctx, report.ID, artifactPath, entities.ReportStatusReady); err != nil {
		return nil, err
	}

	log.Info().
		Str("report_id", report.ID).
		Str("language", language).
		Str("mode", input.Mode).
		Msg("report generated")

	return &GenerateReportResult{
		ReportID:    report.ID,
		ViewURL:     fmt.Sprintf("%s/reports/view/%s", s.frontendURL, report.ID),
		DownloadURL: s.backendURL + artifactPath,
	}, nil
}

// GetByID retrieves a stored report.
func (s *ReportService) GetByID(ctx context.Context, id string) (*entities.Report, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("report id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// writeArtifact stores the rendered page under uploads/reports and returns
// the URL path it is served from.
func (s *ReportService) writeArtifact(reportID, html string) (string, error) {
	outDir := filepath.Join(s.uploadsDir, "reports")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", apperrors.NewInternalError("failed to create reports directory", err)
	}

	filename := reportID + ".html"
	if err := os.WriteFile(filepath.Join(outDir, filename), []byte(html), 0o644); err != nil {
		return "", apperrors.NewInternalError("failed to write report artifact", err)
	}

	return "/uploads/reports/" + filename, nil
}
