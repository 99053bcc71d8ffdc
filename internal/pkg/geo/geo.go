package geo

import (
	"errors"
	"math"
)

// ErrInvalidCoordinate is returned when a latitude or longitude falls outside
// the valid WGS84 range.
var ErrInvalidCoordinate = errors.New("coordinate outside valid WGS84 range")

const earthRadiusMeters = 6371000

// Verdict is the result of a geofence check.
type Verdict struct {
	Inside         bool
	DistanceMeters float64
}

// HaversineDistance returns the great-circle distance between two coordinates
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Validate checks whether a reported coordinate lies within radiusMeters of an
// office coordinate. A point exactly on the radius counts as inside. It has no
// side effects.
func Validate(lat, lon, officeLat, officeLon float64, radiusMeters int) (Verdict, error) {
	for _, latitude := range []float64{lat, officeLat} {
		if latitude < -90 || latitude > 90 {
			return Verdict{}, ErrInvalidCoordinate
		}
	}
	for _, longitude := range []float64{lon, officeLon} {
		if longitude < -180 || longitude > 180 {
			return Verdict{}, ErrInvalidCoordinate
		}
	}

	distance := HaversineDistance(lat, lon, officeLat, officeLon)
	return Verdict{
		Inside:         distance <= float64(radiusMeters),
		DistanceMeters: distance,
	}, nil
}
