package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyapath/backend/internal/api/handlers"
	"github.com/arogyapath/backend/internal/application/services"
	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/pkg/config"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

type stubReportRepo struct {
	reports map[string]*entities.Report
}

func (s *stubReportRepo) Create(ctx context.Context, report *entities.Report) error {
	s.reports[report.ID] = report
	return nil
}

func (s *stubReportRepo) GetByID(ctx context.Context, id string) (*entities.Report, error) {
	if report, ok := s.reports[id]; ok {
		return report, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("report with id %s not found", id))
}

func (s *stubReportRepo) UpdateArtifact(ctx context.Context, id, artifactPath string, status entities.ReportStatus) error {
	report, ok := s.reports[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("report with id %s not found", id))
	}
	report.ArtifactPath = artifactPath
	report.Status = status
	return nil
}

func (s *stubReportRepo) UpdateStatus(ctx context.Context, id string, status entities.ReportStatus) error {
	report, ok := s.reports[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("report with id %s not found", id))
	}
	report.Status = status
	return nil
}

type stubModel struct {
	response string
}

func (s *stubModel) Complete(ctx context.Context, language, userPrompt string) (string, error) {
	return s.response, nil
}

func newReportHandler(t *testing.T) (*handlers.ReportHandler, *stubReportRepo) {
	t.Helper()
	repo := &stubReportRepo{reports: map[string]*entities.Report{}}
	service := services.NewReportService(repo, &stubModel{response: "All clear."},
		&config.StorageConfig{UploadsDir: t.TempDir()},
		&config.LinksConfig{
			FrontendURL: "http://localhost:3000",
			BackendURL:  "http://localhost:3001",
		})
	return handlers.NewReportHandler(service), repo
}

func TestReportHandler_GenerateReport(t *testing.T) {
	handler, repo := newReportHandler(t)

	body := `{"prediction":{"predicted_class":"glioma_tumor","confidence":91},"language":"english"}`
	req := httptest.NewRequest("POST", "/api/reports/generate", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.GenerateReport(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		ReportID    string `json:"reportId"`
		ViewURL     string `json:"viewUrl"`
		DownloadURL string `json:"downloadUrl"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.ReportID)
	assert.Contains(t, response.ViewURL, response.ReportID)
	assert.Contains(t, response.DownloadURL, ".html")

	report := repo.reports[response.ReportID]
	require.NotNil(t, report)
	assert.Equal(t, entities.ReportStatusReady, report.Status)
}

func TestReportHandler_GenerateReport_MissingPrediction(t *testing.T) {
	handler, _ := newReportHandler(t)

	req := httptest.NewRequest("POST", "/api/reports/generate", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.GenerateReport(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_GetReport_NotFound(t *testing.T) {
	handler, _ := newReportHandler(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reports/{id}", handler.GetReport)

	req := httptest.NewRequest("GET", "/api/reports/missing", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportHandler_GetReport(t *testing.T) {
	handler, repo := newReportHandler(t)

	userID := "user-1"
	repo.reports["r1"] = &entities.Report{
		ID:         "r1",
		UserID:     &userID,
		Prediction: json.RawMessage(`{"predicted_class":"meningioma"}`),
		Confidence: 72,
		LLMContent: json.RawMessage(`{"raw":"text"}`),
		Storage:    entities.StorageLocal,
		Status:     entities.ReportStatusReady,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reports/{id}", handler.GetReport)

	req := httptest.NewRequest("GET", "/api/reports/r1", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "r1", response["id"])
	assert.Equal(t, "user-1", response["userId"])
	assert.Equal(t, "ready", response["status"])
}
