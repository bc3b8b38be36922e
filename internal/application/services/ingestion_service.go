package services

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
	"github.com/arogyapath/backend/pkg/config"
)

// IngestionService loads the hospital directory from the PMJAY empanelment
// CSV. A reload replaces the whole collection: delete everything, then
// insert the new batch in fixed-size chunks, tolerating per-chunk failures.
type IngestionService struct {
	repo      repositories.HospitalRepository
	csvPath   string
	batchSize int
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(repo repositories.HospitalRepository, cfg *config.IngestionConfig) *IngestionService {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &IngestionService{
		repo:      repo,
		csvPath:   cfg.CSVPath,
		batchSize: batchSize,
	}
}

// EnsureLoaded loads the directory on startup if the store is empty.
func (s *IngestionService) EnsureLoaded(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("hospitals", count).Msg("hospital directory already loaded")
		return nil
	}

	_, err = s.load(ctx)
	return err
}

// Reload deletes every hospital record and loads the directory again.
// The delete-then-insert sequence is not transactional: a concurrent search
// can observe a transiently empty collection while an admin reload runs.
func (s *IngestionService) Reload(ctx context.Context) (int, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("deleted", deleted).Msg("cleared hospital directory")

	return s.load(ctx)
}

func (s *IngestionService) load(ctx context.Context) (int, error) {
	hospitals, err := s.readCSV()
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", s.csvPath).Msg("hospital CSV not found, loading sample data")
			hospitals = sampleHospitals()
		} else {
			return 0, err
		}
	}

	return s.insertBatches(ctx, hospitals), nil
}

// insertBatches writes hospitals in fixed-size chunks. Insert failures on
// individual chunks are logged and skipped, not propagated.
func (s *IngestionService) insertBatches(ctx context.Context, hospitals []*entities.Hospital) int {
	inserted := 0
	for start := 0; start < len(hospitals); start += s.batchSize {
		end := start + s.batchSize
		if end > len(hospitals) {
			end = len(hospitals)
		}

		n, err := s.repo.InsertBatch(ctx, hospitals[start:end])
		if err != nil {
			log.Error().Err(err).Int("batch_start", start).Msg("failed to insert hospital batch")
			continue
		}
		inserted += n
	}

	log.Info().Int("inserted", inserted).Int("parsed", len(hospitals)).Msg("hospital directory loaded")
	return inserted
}

func (s *IngestionService) readCSV() ([]*entities.Hospital, error) {
	file, err := os.Open(s.csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	hospitals := []*entities.Hospital{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed CSV row")
			continue
		}

		if hospital := parseHospitalRow(record, columns); hospital != nil {
			hospitals = append(hospitals, hospital)
		}
	}

	return hospitals, nil
}

// parseHospitalRow maps one CSV row to a hospital candidate. Rows missing a
// name or state are discarded. The source has no city column, so district
// doubles as city, and every row is empaneled by definition of the source.
func parseHospitalRow(record []string, columns map[string]int) *entities.Hospital {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := field("Hospital Name")
	state := field("State")
	if name == "" || state == "" {
		return nil
	}

	district := field("District")
	specialty := field("Empanled Specialities")
	if specialty == "" {
		specialty = "General"
	}

	return &entities.Hospital{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   buildAddress(district, state),
		City:      district,
		District:  district,
		State:     state,
		Pincode:   field("Pincode"),
		Phone:     field("Nodal Person Contact No"),
		Specialty: specialty,
		Type:      ClassifyOwnership(name),
		Empaneled: true,
		Latitude:  parseCoordinate(field("Latitude")),
		Longitude: parseCoordinate(field("Longitude")),
	}
}

func buildAddress(district, state string) string {
	switch {
	case district != "" && state != "":
		return district + ", " + state
	case district != "":
		return district
	default:
		return state
	}
}

// parseCoordinate returns nil for missing or unparseable values, never zero.
func parseCoordinate(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func floatPtr(v float64) *float64 {
	return &v
}

// sampleHospitals keeps the service usable when the CSV is unavailable.
func sampleHospitals() []*entities.Hospital {
	return []*entities.Hospital{
		{
			ID:        uuid.New().String(),
			Name:      "All India Institute of Medical Sciences",
			Address:   "Ansari Nagar, Aruna Asaf Ali Marg",
			City:      "New Delhi",
			District:  "New Delhi",
			State:     "Delhi",
			Pincode:   "110029",
			Phone:     "011-26588500",
			Specialty: "Multi-specialty",
			Type:      entities.OwnershipGovernment,
			Empaneled: true,
			Latitude:  floatPtr(28.5562),
			Longitude: floatPtr(77.2094),
		},
		{
			ID:        uuid.New().String(),
			Name:      "Apollo Hospitals",
			Address:   "Sarita Vihar",
			City:      "New Delhi",
			District:  "New Delhi",
			State:     "Delhi",
			Pincode:   "110076",
			Phone:     "011-26925858",
			Specialty: "Multi-specialty",
			Type:      entities.OwnershipPrivate,
			Empaneled: true,
			Latitude:  floatPtr(28.5355),
			Longitude: floatPtr(77.2823),
		},
		{
			ID:        uuid.New().String(),
			Name:      "Fortis Healthcare",
			Address:   "Sector 62",
			City:      "Noida",
			District:  "Gautam Buddha Nagar",
			State:     "Uttar Pradesh",
			Pincode:   "201301",
			Phone:     "0120-3988888",
			Specialty: "Multi-specialty",
			Type:      entities.OwnershipPrivate,
			Empaneled: true,
			Latitude:  floatPtr(28.6139),
			Longitude: floatPtr(77.3910),
		},
	}
}
