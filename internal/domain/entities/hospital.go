package entities

import "time"

// OwnershipType classifies who runs a hospital. It is derived once from the
// hospital name during ingestion and never recomputed.
type OwnershipType string

const (
	OwnershipGovernment OwnershipType = "Government"
	OwnershipPrivate    OwnershipType = "Private"
	OwnershipUnknown    OwnershipType = "Unknown"
)

// Hospital represents an empaneled hospital in the directory
type Hospital struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Address   string        `json:"address" db:"address"`
	City      string        `json:"city" db:"city"`
	District  string        `json:"district" db:"district"`
	State     string        `json:"state" db:"state"`
	Pincode   string        `json:"pincode" db:"pincode"`
	Phone     string        `json:"phone" db:"phone"`
	Specialty string        `json:"specialty" db:"specialty"`
	Type      OwnershipType `json:"type" db:"type"`
	Empaneled bool          `json:"pmjay_empaneled" db:"pmjay_empaneled"`
	Latitude  *float64      `json:"latitude" db:"latitude"`
	Longitude *float64      `json:"longitude" db:"longitude"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (h *Hospital) HasCoordinates() bool {
	return h.Latitude != nil && h.Longitude != nil
}

// HospitalWithDistance decorates a hospital with the great-circle distance
// from a search reference point, in kilometers.
type HospitalWithDistance struct {
	*Hospital
	DistanceKm *float64 `json:"distance,omitempty"`
}
