package repositories

import (
	"context"

	"github.com/arogyapath/backend/internal/domain/entities"
)

// HospitalFilter holds the store-level predicates for a hospital search.
// All predicates are ANDed; Query internally ORs across name, city, address
// and state.
type HospitalFilter struct {
	Query     string
	State     string
	District  string
	Empaneled *bool
	Type      entities.OwnershipType
	Limit     int
	Offset    int
}

// HospitalRepository defines the interface for hospital data operations
type HospitalRepository interface {
	// Search retrieves hospitals matching the filter, paginated at the
	// store level.
	Search(ctx context.Context, filter HospitalFilter) ([]*entities.Hospital, error)

	// GetByID retrieves a hospital by ID
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// List retrieves up to limit hospitals in store order
	List(ctx context.Context, limit int) ([]*entities.Hospital, error)

	// DistinctStates returns sorted distinct non-empty state names
	DistinctStates(ctx context.Context) ([]string, error)

	// DistinctDistricts returns sorted distinct non-empty district names
	// for a case-insensitive state match
	DistinctDistricts(ctx context.Context, state string) ([]string, error)

	// Count returns the number of hospital records
	Count(ctx context.Context) (int64, error)

	// DeleteAll removes every hospital record
	DeleteAll(ctx context.Context) (int64, error)

	// InsertBatch inserts a batch of hospitals, returning how many rows
	// were written
	InsertBatch(ctx context.Context, hospitals []*entities.Hospital) (int, error)
}
