package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monas and Bundaran HI, Jakarta: roughly 2.3 km apart.
const (
	monasLat = -6.175392
	monasLon = 106.827153
	hiLat    = -6.194944
	hiLon    = 106.822987
)

func TestHaversineDistance_KnownPoints(t *testing.T) {
	d := HaversineDistance(monasLat, monasLon, hiLat, hiLon)
	assert.InDelta(t, 2220, d, 150)
}

func TestHaversineDistance_SamePoint(t *testing.T) {
	d := HaversineDistance(monasLat, monasLon, monasLat, monasLon)
	assert.Equal(t, 0.0, d)
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	forward := HaversineDistance(monasLat, monasLon, hiLat, hiLon)
	backward := HaversineDistance(hiLat, hiLon, monasLat, monasLon)
	assert.Equal(t, forward, backward)
}

func TestValidate_InsideRadius(t *testing.T) {
	// ~111 m per 0.001 degree of latitude
	verdict, err := Validate(monasLat+0.001, monasLon, monasLat, monasLon, 500)
	require.NoError(t, err)
	assert.True(t, verdict.Inside)
	assert.InDelta(t, 111, verdict.DistanceMeters, 5)
}

func TestValidate_OutsideRadius(t *testing.T) {
	// ~800 m north of the office with a 500 m radius
	verdict, err := Validate(monasLat+0.0072, monasLon, monasLat, monasLon, 500)
	require.NoError(t, err)
	assert.False(t, verdict.Inside)
	assert.InDelta(t, 800, verdict.DistanceMeters, 20)
}

func TestValidate_ExactlyAtOffice(t *testing.T) {
	verdict, err := Validate(monasLat, monasLon, monasLat, monasLon, 500)
	require.NoError(t, err)
	assert.True(t, verdict.Inside)
	assert.Equal(t, 0.0, verdict.DistanceMeters)
}

func TestValidate_InvalidCoordinates(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"latitude too high", 90.5, 0},
		{"latitude too low", -91, 0},
		{"longitude too high", 0, 180.1},
		{"longitude too low", 0, -181},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Validate(c.lat, c.lon, monasLat, monasLon, 500)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}

	// Office coordinates are validated too
	_, err := Validate(monasLat, monasLon, -95, 200, 500)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}
