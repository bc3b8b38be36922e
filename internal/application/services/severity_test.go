package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arogyapath/backend/internal/application/services"
)

func TestSeverityFromConfidence(t *testing.T) {
	tests := []struct {
		confidence float64
		level      string
	}{
		{95, "High"},
		{90, "High"},
		{89.9, "Moderate"},
		{70, "Moderate"},
		{69.9, "Low-Moderate"},
		{50, "Low-Moderate"},
		{49.9, "Low"},
		{0, "Low"},
	}

	for _, tt := range tests {
		severity := services.SeverityFromConfidence(tt.confidence)
		assert.Equal(t, tt.level, severity.Level, "confidence %v", tt.confidence)
		assert.NotEmpty(t, severity.Note)
	}
}

func TestSeverityFromConfidence_Notes(t *testing.T) {
	assert.Equal(t,
		"High confidence — recommend urgent specialist referral.",
		services.SeverityFromConfidence(92).Note)
	assert.Equal(t,
		"Low confidence — inconclusive, recommend expert radiologist review.",
		services.SeverityFromConfidence(10).Note)
}
