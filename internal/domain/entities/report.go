package entities

import (
	"encoding/json"
	"time"
)

// ReportStatus tracks the lifecycle of a generated report.
type ReportStatus string

const (
	ReportStatusPending ReportStatus = "pending"
	ReportStatusReady   ReportStatus = "ready"
	ReportStatusFailed  ReportStatus = "failed"
)

// StorageKind identifies where a report artifact lives.
type StorageKind string

const (
	StorageLocal StorageKind = "local"
	StorageS3    StorageKind = "s3"
)

// Report is a persisted AI diagnostic report. Prediction and LLMContent are
// stored as opaque JSON documents.
type Report struct {
	ID           string          `json:"id" db:"id"`
	UserID       *string         `json:"userId" db:"user_id"`
	Prediction   json.RawMessage `json:"prediction" db:"prediction"`
	Confidence   float64         `json:"confidence" db:"confidence"`
	LLMContent   json.RawMessage `json:"llmContent" db:"llm_content"`
	ArtifactPath string          `json:"pdfPath" db:"artifact_path"`
	Storage      StorageKind     `json:"storage" db:"storage"`
	Status       ReportStatus    `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}

// Prediction is the subset of the classifier payload the report flow reads.
// The full payload is persisted verbatim on the report.
type Prediction struct {
	PredictedClass string  `json:"predicted_class"`
	Label          string  `json:"label"`
	Confidence     float64 `json:"confidence"`
}

// ConditionName returns the predicted condition, preferring predicted_class
// over label, with underscores normalized to spaces by the renderer.
func (p *Prediction) ConditionName() string {
	if p.PredictedClass != "" {
		return p.PredictedClass
	}
	if p.Label != "" {
		return p.Label
	}
	return "Unknown"
}

// Severity is a coarse confidence-derived tier attached to a prediction for
// patient-facing communication.
type Severity struct {
	Level string `json:"level"`
	Note  string `json:"note"`
}
