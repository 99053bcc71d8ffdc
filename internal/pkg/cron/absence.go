package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/attendance"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/notification"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/schedule"
)

// systemActor marks administrative records written by background jobs rather
// than a person.
const systemActor = "system"

// AbsenceJobs marks workers absent for workdays that ended with no attendance
// record. No online operation produces the absent status; this job does.
type AbsenceJobs struct {
	attendanceRepo  attendance.AttendanceRepository
	attendanceSvc   attendance.AttendanceService
	employeeRepo    employee.EmployeeRepository
	scheduleSvc     schedule.ScheduleService
	notificationSvc notification.Service
	loc             *time.Location
}

func NewAbsenceJobs(
	attendanceRepo attendance.AttendanceRepository,
	attendanceSvc attendance.AttendanceService,
	employeeRepo employee.EmployeeRepository,
	scheduleSvc schedule.ScheduleService,
	notificationSvc notification.Service,
	loc *time.Location,
) *AbsenceJobs {
	return &AbsenceJobs{
		attendanceRepo:  attendanceRepo,
		attendanceSvc:   attendanceSvc,
		employeeRepo:    employeeRepo,
		scheduleSvc:     scheduleSvc,
		notificationSvc: notificationSvc,
		loc:             loc,
	}
}

func (j *AbsenceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills absent records for the previous local day.
// Running hourly keeps the job cheap; the date guard makes reruns idempotent
// because already-recorded days no longer show up as unrecorded.
func (j *AbsenceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := time.Now().In(j.loc).AddDate(0, 0, -1)
	date := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, j.loc)

	unrecorded, err := j.attendanceRepo.ListUnrecordedEmployees(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to list unrecorded employees: %w", err)
	}
	if len(unrecorded) == 0 {
		return nil
	}

	marked := 0
	for _, employeeID := range unrecorded {
		placement, err := j.employeeRepo.GetPlacement(ctx, employeeID)
		if err != nil {
			slog.Warn("Cron: skipping employee without placement", "employee_id", employeeID, "error", err)
			continue
		}

		workday, err := j.scheduleSvc.Resolve(ctx, placement.PositionID, date)
		if err != nil {
			if errors.Is(err, schedule.ErrScheduleNotConfigured) {
				slog.Warn("Cron: schedule not configured, cannot mark absence", "employee_id", employeeID, "position_id", placement.PositionID)
				continue
			}
			return fmt.Errorf("failed to resolve schedule for employee %s: %w", employeeID, err)
		}
		if workday.IsDayOff {
			continue
		}

		_, err = j.attendanceSvc.RecordAdministrative(ctx, attendance.AdministrativeEntryRequest{
			EmployeeID: employeeID,
			Date:       date.Format("2006-01-02"),
			Status:     string(attendance.StatusAbsent),
			Note:       "no check-in recorded for this workday",
			ActorID:    systemActor,
		})
		if err != nil {
			// A record may have appeared since the unrecorded query ran.
			if errors.Is(err, attendance.ErrAlreadyCheckedIn) || errors.Is(err, attendance.ErrDayAlreadyRecorded) {
				continue
			}
			slog.Error("Cron: failed to mark absence", "employee_id", employeeID, "error", err)
			continue
		}

		j.notificationSvc.Notify(notification.CreateNotificationRequest{
			RecipientID: employeeID,
			Type:        notification.TypeMarkedAbsent,
			Title:       "Marked absent",
			Message:     fmt.Sprintf("You were marked absent for %s because no check-in was recorded.", date.Format("2006-01-02")),
		})
		marked++
	}

	slog.Info("Cron: absence marking finished", "date", date.Format("2006-01-02"), "marked", marked)
	return nil
}
