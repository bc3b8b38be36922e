package services_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arogyapath/backend/internal/application/services"
)

func TestHaversineKm_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, services.HaversineKm(28.6139, 77.2090, 28.6139, 77.2090))
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := services.HaversineKm(28.6139, 77.2090, 19.0760, 72.8777)
	b := services.HaversineKm(19.0760, 72.8777, 28.6139, 77.2090)
	assert.Equal(t, a, b)
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Delhi to Mumbai is roughly 1150 km great-circle.
	d := services.HaversineKm(28.6139, 77.2090, 19.0760, 72.8777)
	assert.InDelta(t, 1150, d, 20)
}

func TestHaversineKm_RoundsToOneDecimal(t *testing.T) {
	d := services.HaversineKm(28.6139, 77.2090, 28.5355, 77.2823)
	assert.Equal(t, math.Round(d*10)/10, d)
}
