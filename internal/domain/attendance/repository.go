package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Mutation
// paths lock the worker-day row first so concurrent check-ins and check-outs
// serialize instead of racing.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for the pair.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// GetByEmployeeAndDateForUpdate is the same lookup with a row-level lock;
	// must be called inside a transaction.
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, att Attendance) error

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// SoftDelete marks the record deleted but keeps it recoverable.
	SoftDelete(ctx context.Context, id string) error

	// ListUnrecordedEmployees returns active employee IDs with no attendance
	// record on the given date. Used by the absence-marking job.
	ListUnrecordedEmployees(ctx context.Context, date time.Time) ([]string, error)
}
