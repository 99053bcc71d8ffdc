package leave

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/attendance"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
)

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := f.dayKey(att.EmployeeID, att.Date)
	if _, ok := f.records[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[key] = &att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[f.dayKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *att
	return &copied, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return f.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	f.records[f.dayKey(att.EmployeeID, att.Date)] = &att
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) SoftDelete(_ context.Context, _ string) error { return nil }

func (f *fakeAttendanceRepo) ListUnrecordedEmployees(_ context.Context, _ time.Time) ([]string, error) {
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return date
}

func approvedRequest(t *testing.T, start, end, leaveType string) leave.LeaveRequest {
	t.Helper()
	return leave.LeaveRequest{
		ID:         "lr-1",
		EmployeeID: "emp-1",
		StartDate:  day(t, start),
		EndDate:    day(t, end),
		LeaveType:  leaveType,
		Status:     leave.LeaveRequestStatusApproved,
	}
}

func TestReconcileFillsRange(t *testing.T) {
	repo := newFakeAttendanceRepo()
	r := NewReconciler(repo, discardLogger())

	req := approvedRequest(t, "2026-02-02", "2026-02-04", "annual")
	require.NoError(t, r.Reconcile(context.Background(), req))

	assert.Len(t, repo.records, 3)
	for _, d := range []string{"2026-02-02", "2026-02-03", "2026-02-04"} {
		att, ok := repo.records["emp-1|"+d]
		require.True(t, ok, "missing record for %s", d)
		assert.Equal(t, attendance.StatusOnLeave, att.Status)
		require.NotNil(t, att.LeaveRequestID)
		assert.Equal(t, "lr-1", *att.LeaveRequestID)
	}
}

func TestReconcileSickLeaveWritesOnLeave(t *testing.T) {
	repo := newFakeAttendanceRepo()
	r := NewReconciler(repo, discardLogger())

	// The attendance status does not vary with the leave type; the type lives
	// on the request itself.
	req := approvedRequest(t, "2026-02-02", "2026-02-02", "sick")
	require.NoError(t, r.Reconcile(context.Background(), req))

	att := repo.records["emp-1|2026-02-02"]
	require.NotNil(t, att)
	assert.Equal(t, attendance.StatusOnLeave, att.Status)
	require.NotNil(t, att.LeaveRequestID)
	assert.Equal(t, "lr-1", *att.LeaveRequestID)
}

func TestReconcileKeepsWorkedDays(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkIn := time.Now()
	repo.records["emp-1|2026-02-03"] = &attendance.Attendance{
		ID: "att-existing", EmployeeID: "emp-1", Date: day(t, "2026-02-03"),
		Status: attendance.StatusPresent, CheckInAt: &checkIn,
	}

	r := NewReconciler(repo, discardLogger())
	req := approvedRequest(t, "2026-02-02", "2026-02-04", "annual")
	require.NoError(t, r.Reconcile(context.Background(), req))

	worked := repo.records["emp-1|2026-02-03"]
	assert.Equal(t, attendance.StatusPresent, worked.Status, "a worked day is never overwritten")
	assert.Nil(t, worked.LeaveRequestID)

	assert.Equal(t, attendance.StatusOnLeave, repo.records["emp-1|2026-02-02"].Status)
	assert.Equal(t, attendance.StatusOnLeave, repo.records["emp-1|2026-02-04"].Status)
}

func TestReconcileOverwritesAbsence(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.records["emp-1|2026-02-02"] = &attendance.Attendance{
		ID: "att-existing", EmployeeID: "emp-1", Date: day(t, "2026-02-02"),
		Status: attendance.StatusAbsent,
	}

	r := NewReconciler(repo, discardLogger())
	req := approvedRequest(t, "2026-02-02", "2026-02-02", "annual")
	require.NoError(t, r.Reconcile(context.Background(), req))

	att := repo.records["emp-1|2026-02-02"]
	assert.Equal(t, attendance.StatusOnLeave, att.Status, "an absence marked before approval is corrected")
	require.NotNil(t, att.LeaveRequestID)
	assert.Equal(t, "lr-1", *att.LeaveRequestID)
}

func TestReconcileOverlappingApprovedLeave(t *testing.T) {
	repo := newFakeAttendanceRepo()
	otherID := "lr-other"
	repo.records["emp-1|2026-02-03"] = &attendance.Attendance{
		ID: "att-existing", EmployeeID: "emp-1", Date: day(t, "2026-02-03"),
		Status: attendance.StatusOnLeave, LeaveRequestID: &otherID,
	}

	r := NewReconciler(repo, discardLogger())
	req := approvedRequest(t, "2026-02-02", "2026-02-04", "annual")
	err := r.Reconcile(context.Background(), req)

	assert.ErrorIs(t, err, leave.ErrOverlappingLeaveApproved)
}

func TestReconcileAdministrativeConflict(t *testing.T) {
	repo := newFakeAttendanceRepo()
	hrd := "hrd-1"
	repo.records["emp-1|2026-02-02"] = &attendance.Attendance{
		ID: "att-existing", EmployeeID: "emp-1", Date: day(t, "2026-02-02"),
		Status: attendance.StatusSick, RecordedBy: &hrd,
	}

	r := NewReconciler(repo, discardLogger())
	req := approvedRequest(t, "2026-02-02", "2026-02-02", "annual")
	err := r.Reconcile(context.Background(), req)

	assert.ErrorIs(t, err, leave.ErrOverlappingLeaveApproved)
}
