package attendance

import "context"

type AttendanceService interface {
	// CheckIn records the first attendance event of a worker's day. Status
	// comes out late when the timestamp is strictly after the scheduled entry
	// time; exactly on time counts as present.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the day's record. It never changes the status fixed at
	// check-in.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// RecordAdministrative writes sick/leave/absence entries on behalf of HR.
	RecordAdministrative(ctx context.Context, req AdministrativeEntryRequest) (AttendanceResponse, error)

	Get(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetMyAttendance(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}
