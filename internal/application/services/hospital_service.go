package services

import (
	"context"
	"math"
	"sort"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	defaultRadiusKm = 50
)

// SearchParams carries a hospital search request. Latitude, Longitude and
// RadiusKm are optional; when both coordinates are present the result set
// is narrowed to hospitals within the radius and sorted nearest-first.
type SearchParams struct {
	Query     string
	State     string
	District  string
	Empaneled *bool
	Type      entities.OwnershipType
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
	Page      int
	Limit     int
}

// Pagination describes the window of a search result.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
	PerPage      int `json:"per_page"`
}

// SearchResult is the hospital search payload.
type SearchResult struct {
	Hospitals  []entities.HospitalWithDistance `json:"hospitals"`
	Pagination Pagination                      `json:"pagination"`
}

// HospitalService provides hospital directory lookups.
type HospitalService struct {
	repo repositories.HospitalRepository
}

// NewHospitalService creates a new hospital service.
func NewHospitalService(repo repositories.HospitalRepository) *HospitalService {
	return &HospitalService{repo: repo}
}

// Search runs a filtered directory search. The store page is fetched first
// and the geo filter runs over that page, so the pagination totals describe
// the page after distance filtering, not the whole matching set. Callers
// searching by location should keep the page size generous.
func (s *HospitalService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	hospitals, err := s.repo.Search(ctx, repositories.HospitalFilter{
		Query:     params.Query,
		State:     params.State,
		District:  params.District,
		Empaneled: params.Empaneled,
		Type:      params.Type,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	results := make([]entities.HospitalWithDistance, 0, len(hospitals))

	if params.Latitude != nil && params.Longitude != nil {
		radius := defaultRadiusKm * 1.0
		if params.RadiusKm != nil && *params.RadiusKm > 0 {
			radius = *params.RadiusKm
		}

		for _, hospital := range hospitals {
			if !hospital.HasCoordinates() {
				continue
			}
			distance := HaversineKm(*params.Latitude, *params.Longitude, *hospital.Latitude, *hospital.Longitude)
			if distance > radius {
				continue
			}
			d := distance
			results = append(results, entities.HospitalWithDistance{Hospital: hospital, DistanceKm: &d})
		}

		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].DistanceKm < *results[j].DistanceKm
		})
	} else {
		for _, hospital := range hospitals {
			results = append(results, entities.HospitalWithDistance{Hospital: hospital})
		}
	}

	totalPages := int(math.Ceil(float64(len(results)) / float64(limit)))

	return &SearchResult{
		Hospitals: results,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalResults: len(results),
			PerPage:      limit,
		},
	}, nil
}

// GetByID retrieves a single hospital.
func (s *HospitalService) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("hospital id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// List returns up to limit hospitals in store order.
func (s *HospitalService) List(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.List(ctx, limit)
}

// States returns the distinct states covered by the directory.
func (s *HospitalService) States(ctx context.Context) ([]string, error) {
	return s.repo.DistinctStates(ctx)
}

// Count returns the number of hospitals in the directory.
func (s *HospitalService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Districts returns the distinct districts for a state.
func (s *HospitalService) Districts(ctx context.Context, state string) ([]string, error) {
	if state == "" {
		return nil, apperrors.NewValidationError("state is required")
	}
	return s.repo.DistinctDistricts(ctx, state)
}
