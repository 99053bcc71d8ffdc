package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// State-conflict errors: the client's view is stale; refresh and retry the
	// correct next operation.
	ErrAlreadyCheckedIn   = errors.New("already checked in for this day")
	ErrAlreadyCheckedOut  = errors.New("already checked out for this day")
	ErrNotCheckedIn       = errors.New("no check-in exists for this day")
	ErrDayAlreadyRecorded = errors.New("this day already holds an administrative attendance record")

	// Validation errors
	ErrInvalidStatusForManualEntry = errors.New("present and late can only result from a check-in")
	ErrCheckOutBeforeCheckIn       = errors.New("check-out time must not be before check-in time")

	// Policy-violation errors: require a human decision, never retried
	// automatically.
	ErrNotAWorkday = errors.New("check-in rejected: the schedule marks this day as a day off")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// OutsideGeofenceError rejects a check-in or check-out reported from beyond
// the office radius. The measured distance is surfaced so the caller can show
// it and decide about a supervised override.
type OutsideGeofenceError struct {
	DistanceMeters float64
	RadiusMeters   int
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("location is %.0f m from the office, outside the %d m radius", e.DistanceMeters, e.RadiusMeters)
}
