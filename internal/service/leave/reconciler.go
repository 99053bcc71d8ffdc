package leave

import (
	"context"
	"log/slog"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/attendance"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
)

// ReconcilerImpl backfills attendance records for an approved request's date
// range. It runs inside the approving transaction, so a reconciliation failure
// rolls the approval back with it.
type ReconcilerImpl struct {
	attendance.AttendanceRepository
	logger *slog.Logger
}

func NewReconciler(attendanceRepo attendance.AttendanceRepository, logger *slog.Logger) leave.Reconciler {
	return &ReconcilerImpl{
		AttendanceRepository: attendanceRepo,
		logger:               logger,
	}
}

// Reconcile implements leave.Reconciler. Every covered day becomes on_leave
// regardless of leave type; the type stays on the request and is reachable
// through LeaveRequestID.
func (r *ReconcilerImpl) Reconcile(ctx context.Context, req leave.LeaveRequest) error {
	for date := req.StartDate; !date.After(req.EndDate); date = date.AddDate(0, 0, 1) {
		existing, err := r.AttendanceRepository.GetByEmployeeAndDateForUpdate(ctx, req.EmployeeID, date)
		if err != nil {
			return err
		}

		if existing == nil {
			_, err := r.AttendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID:     req.EmployeeID,
				Date:           date,
				Status:         attendance.StatusOnLeave,
				LeaveRequestID: &req.ID,
			})
			if err != nil {
				return err
			}
			continue
		}

		switch {
		case existing.Status == attendance.StatusPresent || existing.Status == attendance.StatusLate:
			// The employee worked a day covered by approved leave. The
			// check-in record wins; leave it untouched and flag it.
			r.logger.Warn("approved leave overlaps a worked day, keeping check-in record",
				"employee_id", req.EmployeeID,
				"leave_request_id", req.ID,
				"date", date.Format("2006-01-02"),
				"status", string(existing.Status),
			)

		case existing.LeaveRequestID != nil && *existing.LeaveRequestID != req.ID:
			return leave.ErrOverlappingLeaveApproved

		case existing.Status == attendance.StatusAbsent:
			existing.Status = attendance.StatusOnLeave
			existing.LeaveRequestID = &req.ID
			if err := r.AttendanceRepository.Update(ctx, *existing); err != nil {
				return err
			}

		default:
			// A sick or on_leave record written administratively for the same
			// range. Overlapping coverage from two sources needs a human.
			return leave.ErrOverlappingLeaveApproved
		}
	}

	return nil
}
