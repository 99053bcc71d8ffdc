package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/attendance"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/office"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/schedule"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	office.OfficeLocationRepository
	scheduleService schedule.ScheduleService
	transactor      database.Transactor
	loc             *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	officeRepo office.OfficeLocationRepository,
	scheduleService schedule.ScheduleService,
	transactor database.Transactor,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:     attendanceRepo,
		EmployeeRepository:       employeeRepo,
		OfficeLocationRepository: officeRepo,
		scheduleService:          scheduleService,
		transactor:               transactor,
		loc:                      loc,
	}
}

// localDate truncates an instant to midnight of its calendar date in the
// service's timezone. Attendance rows are keyed by this date.
func (a *AttendanceServiceImpl) localDate(t time.Time) time.Time {
	local := t.In(a.loc)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, a.loc)
}

// checkGeofence validates the reported coordinate against the employee's
// office and returns the placement for schedule resolution.
func (a *AttendanceServiceImpl) checkGeofence(ctx context.Context, employeeID string, lat, lon float64) (employee.Placement, error) {
	placement, err := a.EmployeeRepository.GetPlacement(ctx, employeeID)
	if err != nil {
		return employee.Placement{}, err
	}

	officeLoc, err := a.OfficeLocationRepository.GetByID(ctx, placement.OfficeID)
	if err != nil {
		return employee.Placement{}, err
	}

	verdict, err := geo.Validate(lat, lon, officeLoc.Latitude, officeLoc.Longitude, officeLoc.RadiusMeters)
	if err != nil {
		return employee.Placement{}, err
	}
	if !verdict.Inside {
		return employee.Placement{}, &attendance.OutsideGeofenceError{
			DistanceMeters: verdict.DistanceMeters,
			RadiusMeters:   officeLoc.RadiusMeters,
		}
	}

	return placement, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	placement, err := a.checkGeofence(ctx, req.EmployeeID, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := a.localDate(req.Timestamp)

	workday, err := a.scheduleService.Resolve(ctx, placement.PositionID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if workday.IsDayOff {
		return attendance.AttendanceResponse{}, attendance.ErrNotAWorkday
	}

	// Status and lateness are fixed against the scheduled entry time. Exactly
	// on time counts as present.
	status := attendance.StatusPresent
	var lateMinutes *int
	if req.Timestamp.After(workday.EntryAt) {
		status = attendance.StatusLate
		minutes := int(req.Timestamp.Sub(workday.EntryAt) / time.Minute)
		lateMinutes = &minutes
	}

	var created attendance.Attendance
	err = a.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDateForUpdate(txCtx, req.EmployeeID, date)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Status.IsManualEntry() {
				return attendance.ErrDayAlreadyRecorded
			}
			return attendance.ErrAlreadyCheckedIn
		}

		checkInAt := req.Timestamp
		created, err = a.AttendanceRepository.Create(txCtx, attendance.Attendance{
			EmployeeID:       req.EmployeeID,
			Date:             date,
			CheckInAt:        &checkInAt,
			CheckInLatitude:  &req.Latitude,
			CheckInLongitude: &req.Longitude,
			Status:           status,
			LateMinutes:      lateMinutes,
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.mapToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.checkGeofence(ctx, req.EmployeeID, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := a.localDate(req.Timestamp)

	var updated attendance.Attendance
	err := a.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDateForUpdate(txCtx, req.EmployeeID, date)
		if err != nil {
			return err
		}
		if existing == nil || existing.CheckInAt == nil {
			return attendance.ErrNotCheckedIn
		}
		if existing.CheckOutAt != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		if req.Timestamp.Before(*existing.CheckInAt) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		checkOutAt := req.Timestamp
		existing.CheckOutAt = &checkOutAt
		existing.CheckOutLatitude = &req.Latitude
		existing.CheckOutLongitude = &req.Longitude

		if err := a.AttendanceRepository.Update(txCtx, *existing); err != nil {
			return err
		}
		updated = *existing
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.mapToResponse(updated), nil
}

// RecordAdministrative implements attendance.AttendanceService. It bypasses
// geofence and schedule checks but refuses the check-in-only statuses.
func (a *AttendanceServiceImpl) RecordAdministrative(ctx context.Context, req attendance.AdministrativeEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.Status(req.Status)
	if !status.IsManualEntry() {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidStatusForManualEntry
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	parsed, err := time.ParseInLocation("2006-01-02", req.Date, a.loc)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	var created attendance.Attendance
	err = a.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDateForUpdate(txCtx, req.EmployeeID, parsed)
		if err != nil {
			return err
		}
		if existing != nil {
			return attendance.ErrDayAlreadyRecorded
		}

		var note *string
		if req.Note != "" {
			note = &req.Note
		}
		actorID := req.ActorID
		created, err = a.AttendanceRepository.Create(txCtx, attendance.Attendance{
			EmployeeID:    req.EmployeeID,
			Date:          parsed,
			Status:        status,
			Note:          note,
			AttachmentURL: req.AttachmentURL,
			RecordedBy:    &actorID,
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.mapToResponse(created), nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return a.mapToResponse(att), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, att := range records {
		resp.Attendances = append(resp.Attendances, a.mapToResponse(att))
	}
	return resp, nil
}

// GetMyAttendance implements attendance.AttendanceService. The employee filter
// is forced to the caller regardless of what the filter carries.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = &employeeID
	return a.List(ctx, filter)
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return a.AttendanceRepository.SoftDelete(ctx, id)
}

func (a *AttendanceServiceImpl) mapToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	formatTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.In(a.loc).Format(time.RFC3339)
		return &s
	}

	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Date:              att.Date.In(a.loc).Format("2006-01-02"),
		CheckInTime:       formatTime(att.CheckInAt),
		CheckOutTime:      formatTime(att.CheckOutAt),
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		Status:            string(att.Status),
		LateMinutes:       att.LateMinutes,
		Note:              att.Note,
		AttachmentURL:     att.AttachmentURL,
	}
}
