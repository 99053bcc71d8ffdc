package office

import "time"

// OfficeLocation anchors the check-in geofence: a registered coordinate plus
// an allowed radius in meters.
type OfficeLocation struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
