package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/attendance"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/office"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/schedule"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/geo"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence rejections carry the measured distance so the client can show
	// how far off the reported location was.
	var geofenceErr *attendance.OutsideGeofenceError
	if errors.As(err, &geofenceErr) {
		Forbidden(w, "Location is outside the office geofence", map[string]string{
			"distance_meters": fmt.Sprintf("%.0f", geofenceErr.DistanceMeters),
			"radius_meters":   fmt.Sprintf("%d", geofenceErr.RadiusMeters),
		})
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this day")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for this day")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in exists for this day")
	case errors.Is(err, attendance.ErrDayAlreadyRecorded):
		Conflict(w, "This day already holds an attendance record")
	case errors.Is(err, attendance.ErrInvalidStatusForManualEntry):
		BadRequest(w, "Present and late can only result from a check-in", nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time must not be before check-in time", nil)
	case errors.Is(err, attendance.ErrNotAWorkday):
		Forbidden(w, "The schedule marks this day as a day off", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotConfigured):
		NotFound(w, "No work schedule configured for this position")
	case errors.Is(err, schedule.ErrDayOffHasTimes):
		BadRequest(w, "A day off must not carry entry or exit times", nil)
	case errors.Is(err, schedule.ErrWorkdayNeedsTimes):
		BadRequest(w, "A workday requires entry and exit times", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, leave.ErrRequestAlreadyTerminal):
		Conflict(w, "Leave request is already approved, rejected or cancelled")
	case errors.Is(err, leave.ErrCannotCancelTerminalRequest):
		Conflict(w, "A terminal leave request cannot be cancelled")
	case errors.Is(err, leave.ErrNotAuthorizedForStage):
		Forbidden(w, "Your role does not match the pending approval stage", nil)
	case errors.Is(err, leave.ErrNotRequester):
		Forbidden(w, "Only the original requester may cancel", nil)
	case errors.Is(err, leave.ErrApprovalChainNotConfigured):
		InternalServerError(w, "No approval chain configured for your role, contact HR")
	case errors.Is(err, leave.ErrOverlappingLeaveApproved):
		Conflict(w, "The requested dates are already covered by an approved leave")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrPlacementNotConfigured):
		InternalServerError(w, "Employee has no position or office assigned, contact HR")

	// Office domain errors
	case errors.Is(err, office.ErrOfficeNotFound):
		NotFound(w, "Office location not found")

	case errors.Is(err, geo.ErrInvalidCoordinate):
		BadRequest(w, "Coordinate outside valid range", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
