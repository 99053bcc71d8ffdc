package attendance

import "time"

// Status is the derived attendance status for one worker-day. present and
// late only ever come out of the check-in path; absent, sick and on_leave are
// administrative or reconciled.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusSick    Status = "sick"
	StatusOnLeave Status = "on_leave"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusLate),
	string(StatusAbsent),
	string(StatusSick),
	string(StatusOnLeave),
}

// IsManualEntry reports whether the status may be written administratively,
// outside the geofenced check-in flow.
func (s Status) IsManualEntry() bool {
	return s == StatusAbsent || s == StatusSick || s == StatusOnLeave
}

// Attendance is the single record per (employee, date). Soft-deleted records
// keep their row with DeletedAt set and are recoverable.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	CheckInAt         *time.Time
	CheckOutAt        *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	Status      Status
	LateMinutes *int

	Note          *string
	AttachmentURL *string

	// RecordedBy is set for administrative entries, LeaveRequestID for records
	// written by leave reconciliation.
	RecordedBy     *string
	LeaveRequestID *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	// Joined for responses
	EmployeeName *string
}
