package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyapath/backend/internal/application/services"
	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
)

type stubHospitalRepo struct {
	hospitals  []*entities.Hospital
	lastFilter repositories.HospitalFilter
	count      int64
	deleted    int64
	inserted   []*entities.Hospital
}

func (s *stubHospitalRepo) Search(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	s.lastFilter = filter
	return s.hospitals, nil
}

func (s *stubHospitalRepo) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	for _, h := range s.hospitals {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, nil
}

func (s *stubHospitalRepo) List(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	if limit < len(s.hospitals) {
		return s.hospitals[:limit], nil
	}
	return s.hospitals, nil
}

func (s *stubHospitalRepo) DistinctStates(ctx context.Context) ([]string, error) {
	return []string{"Delhi", "Himachal Pradesh"}, nil
}

func (s *stubHospitalRepo) DistinctDistricts(ctx context.Context, state string) ([]string, error) {
	return []string{"Shimla", "Solan"}, nil
}

func (s *stubHospitalRepo) Count(ctx context.Context) (int64, error) {
	return s.count, nil
}

func (s *stubHospitalRepo) DeleteAll(ctx context.Context) (int64, error) {
	deleted := int64(len(s.hospitals))
	s.hospitals = nil
	s.deleted += deleted
	return deleted, nil
}

func (s *stubHospitalRepo) InsertBatch(ctx context.Context, hospitals []*entities.Hospital) (int, error) {
	s.inserted = append(s.inserted, hospitals...)
	s.hospitals = append(s.hospitals, hospitals...)
	return len(hospitals), nil
}

func ptr(v float64) *float64 { return &v }

func testHospitals() []*entities.Hospital {
	return []*entities.Hospital{
		{ID: "h1", Name: "AIIMS", State: "Delhi", Latitude: ptr(28.5562), Longitude: ptr(77.2094)},
		{ID: "h2", Name: "Apollo", State: "Delhi", Latitude: ptr(28.5355), Longitude: ptr(77.2823)},
		{ID: "h3", Name: "Fortis", State: "Uttar Pradesh", Latitude: ptr(28.6139), Longitude: ptr(77.3910)},
		{ID: "h4", Name: "No Coords Hospital", State: "Delhi"},
	}
}

func TestHospitalService_Search_NoGeo(t *testing.T) {
	repo := &stubHospitalRepo{hospitals: testHospitals()}
	service := services.NewHospitalService(repo)

	result, err := service.Search(context.Background(), services.SearchParams{
		Query: "hospital",
		State: "Delhi",
	})
	require.NoError(t, err)

	assert.Len(t, result.Hospitals, 4)
	for _, h := range result.Hospitals {
		assert.Nil(t, h.DistanceKm)
	}
	assert.Equal(t, 1, result.Pagination.CurrentPage)
	assert.Equal(t, 20, result.Pagination.PerPage)
	assert.Equal(t, 4, result.Pagination.TotalResults)

	assert.Equal(t, "hospital", repo.lastFilter.Query)
	assert.Equal(t, "Delhi", repo.lastFilter.State)
	assert.Equal(t, 20, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}

func TestHospitalService_Search_GeoFilterAndSort(t *testing.T) {
	repo := &stubHospitalRepo{hospitals: testHospitals()}
	service := services.NewHospitalService(repo)

	// Reference point near AIIMS Delhi; 20 km radius excludes Fortis Noida
	// and hospitals without coordinates.
	result, err := service.Search(context.Background(), services.SearchParams{
		Latitude:  ptr(28.5562),
		Longitude: ptr(77.2094),
		RadiusKm:  ptr(10.0),
	})
	require.NoError(t, err)

	require.Len(t, result.Hospitals, 2)
	assert.Equal(t, "h1", result.Hospitals[0].ID)
	assert.Equal(t, "h2", result.Hospitals[1].ID)

	require.NotNil(t, result.Hospitals[0].DistanceKm)
	require.NotNil(t, result.Hospitals[1].DistanceKm)
	assert.Equal(t, 0.0, *result.Hospitals[0].DistanceKm)
	assert.LessOrEqual(t, *result.Hospitals[0].DistanceKm, *result.Hospitals[1].DistanceKm)

	assert.Equal(t, 2, result.Pagination.TotalResults)
}

func TestHospitalService_Search_DefaultRadius(t *testing.T) {
	repo := &stubHospitalRepo{hospitals: testHospitals()}
	service := services.NewHospitalService(repo)

	// No radius given: the 50 km default keeps Fortis Noida in range.
	result, err := service.Search(context.Background(), services.SearchParams{
		Latitude:  ptr(28.5562),
		Longitude: ptr(77.2094),
	})
	require.NoError(t, err)
	assert.Len(t, result.Hospitals, 3)
}

func TestHospitalService_Search_PaginationForwardedToStore(t *testing.T) {
	repo := &stubHospitalRepo{hospitals: testHospitals()}
	service := services.NewHospitalService(repo)

	_, err := service.Search(context.Background(), services.SearchParams{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Equal(t, 20, repo.lastFilter.Offset)
}

func TestHospitalService_Search_LimitClamped(t *testing.T) {
	repo := &stubHospitalRepo{hospitals: nil}
	service := services.NewHospitalService(repo)

	_, err := service.Search(context.Background(), services.SearchParams{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastFilter.Limit)
}

func TestHospitalService_Districts_RequiresState(t *testing.T) {
	service := services.NewHospitalService(&stubHospitalRepo{})

	_, err := service.Districts(context.Background(), "")
	assert.Error(t, err)
}
