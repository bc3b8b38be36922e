package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyapath/backend/internal/application/services"
	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/pkg/config"
)

const testCSV = `Hospital Name,District,State,Pincode,Nodal Person Contact No,Empanled Specialities,Latitude,Longitude
AIIMS New Delhi,New Delhi,Delhi,110029,011-26588500,Multi-specialty,28.5562,77.2094
Apollo Clinic,Chennai,Tamil Nadu,600006,044-28293333,,13.0604,80.2496
,Missing Name,Kerala,682001,,,9.9312,76.2673
No State Hospital,Ernakulam,,682002,,,9.9312,76.2673
Bad Coords Hospital,Pune,Maharashtra,411001,,,not-a-number,77.1
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hospitals.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestionService_Reload_ParsesRows(t *testing.T) {
	repo := &stubHospitalRepo{}
	service := services.NewIngestionService(repo, &config.IngestionConfig{
		CSVPath:   writeCSV(t, testCSV),
		BatchSize: 2,
	})

	inserted, err := service.Reload(context.Background())
	require.NoError(t, err)

	// Rows without a name or state are discarded.
	assert.Equal(t, 3, inserted)
	require.Len(t, repo.inserted, 3)

	aiims := repo.inserted[0]
	assert.Equal(t, "AIIMS New Delhi", aiims.Name)
	assert.Equal(t, "New Delhi, Delhi", aiims.Address)
	assert.Equal(t, "New Delhi", aiims.City)
	assert.Equal(t, entities.OwnershipGovernment, aiims.Type)
	assert.True(t, aiims.Empaneled)
	require.NotNil(t, aiims.Latitude)
	assert.InDelta(t, 28.5562, *aiims.Latitude, 1e-9)

	apollo := repo.inserted[1]
	assert.Equal(t, entities.OwnershipPrivate, apollo.Type)
	assert.Equal(t, "General", apollo.Specialty)

	// Unparseable coordinates come through as nil, never zero.
	badCoords := repo.inserted[2]
	assert.Nil(t, badCoords.Latitude)
	require.NotNil(t, badCoords.Longitude)
}

func TestIngestionService_Reload_ClearsExistingRecords(t *testing.T) {
	repo := &stubHospitalRepo{hospitals: testHospitals()}
	service := services.NewIngestionService(repo, &config.IngestionConfig{
		CSVPath:   writeCSV(t, testCSV),
		BatchSize: 1000,
	})

	_, err := service.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), repo.deleted)
}

func TestIngestionService_MissingCSVFallsBackToSampleData(t *testing.T) {
	repo := &stubHospitalRepo{}
	service := services.NewIngestionService(repo, &config.IngestionConfig{
		CSVPath:   filepath.Join(t.TempDir(), "does-not-exist.csv"),
		BatchSize: 1000,
	})

	inserted, err := service.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)
	assert.Len(t, repo.inserted, 3)
}

func TestIngestionService_EnsureLoaded_SkipsWhenPopulated(t *testing.T) {
	repo := &stubHospitalRepo{count: 100}
	service := services.NewIngestionService(repo, &config.IngestionConfig{
		CSVPath:   filepath.Join(t.TempDir(), "does-not-exist.csv"),
		BatchSize: 1000,
	})

	require.NoError(t, service.EnsureLoaded(context.Background()))
	assert.Empty(t, repo.inserted)
}
