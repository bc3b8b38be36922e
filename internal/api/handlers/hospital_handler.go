package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/arogyapath/backend/internal/application/services"
	"github.com/arogyapath/backend/internal/domain/entities"
)

// HospitalHandler handles hospital directory HTTP requests.
type HospitalHandler struct {
	service   *services.HospitalService
	ingestion *services.IngestionService
}

// NewHospitalHandler creates a new hospital handler.
func NewHospitalHandler(service *services.HospitalService, ingestion *services.IngestionService) *HospitalHandler {
	return &HospitalHandler{
		service:   service,
		ingestion: ingestion,
	}
}

// SearchHospitals handles GET /api/hospitals/search
func (h *HospitalHandler) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := services.SearchParams{
		Query:    query.Get("query"),
		State:    query.Get("state"),
		District: query.Get("district"),
		Type:     parseOwnershipParam(query.Get("type")),
		Page:     parseIntParam(query.Get("page"), 1),
		Limit:    parseIntParam(query.Get("limit"), 20),
	}

	switch query.Get("ayushman") {
	case "yes":
		empaneled := true
		params.Empaneled = &empaneled
	case "no":
		empaneled := false
		params.Empaneled = &empaneled
	}

	params.Latitude = parseFloatParam(query.Get("lat"))
	params.Longitude = parseFloatParam(query.Get("lng"))
	params.RadiusKm = parseFloatParam(query.Get("radius"))

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err, "failed to search hospitals")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ListHospitals handles GET /api/hospitals
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r.URL.Query().Get("limit"), 20)

	hospitals, err := h.service.List(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err, "failed to list hospitals")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	hospital, err := h.service.GetByID(r.Context(), hospitalID)
	if err != nil {
		respondWithAppError(w, err, "failed to get hospital")
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}

// GetStates handles GET /api/hospitals/states
func (h *HospitalHandler) GetStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.service.States(r.Context())
	if err != nil {
		respondWithAppError(w, err, "failed to list states")
		return
	}

	respondWithJSON(w, http.StatusOK, states)
}

// GetDistricts handles GET /api/hospitals/districts/{state}
func (h *HospitalHandler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	state := r.PathValue("state")

	districts, err := h.service.Districts(r.Context(), state)
	if err != nil {
		respondWithAppError(w, err, "failed to list districts")
		return
	}

	respondWithJSON(w, http.StatusOK, districts)
}

// ReloadHospitals handles POST /api/admin/hospitals/reload
func (h *HospitalHandler) ReloadHospitals(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.ingestion.Reload(r.Context())
	if err != nil {
		respondWithAppError(w, err, "failed to reload hospital directory")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "reloaded",
		"inserted": inserted,
	})
}

// parseOwnershipParam maps the lowercase type filter values onto the stored
// capitalized enum; "all" and unknown values mean no filter.
func parseOwnershipParam(raw string) entities.OwnershipType {
	switch strings.ToLower(raw) {
	case "government":
		return entities.OwnershipGovernment
	case "private":
		return entities.OwnershipPrivate
	default:
		return ""
	}
}

func parseIntParam(raw string, defaultValue int) int {
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseFloatParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}
