package services

import "github.com/arogyapath/backend/internal/domain/entities"

// SeverityFromConfidence maps a classifier confidence percentage to a
// patient-facing severity tier with a fixed advisory note.
func SeverityFromConfidence(confidence float64) entities.Severity {
	switch {
	case confidence >= 90:
		return entities.Severity{
			Level: "High",
			Note:  "High confidence — recommend urgent specialist referral.",
		}
	case confidence >= 70:
		return entities.Severity{
			Level: "Moderate",
			Note:  "Moderate confidence — recommend confirmatory testing and specialist review.",
		}
	case confidence >= 50:
		return entities.Severity{
			Level: "Low-Moderate",
			Note:  "Low-moderate confidence — suggest repeat imaging or further tests.",
		}
	default:
		return entities.Severity{
			Level: "Low",
			Note:  "Low confidence — inconclusive, recommend expert radiologist review.",
		}
	}
}
