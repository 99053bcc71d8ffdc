package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/schedule"
)

type fakeScheduleRepo struct {
	rows     map[[2]interface{}]schedule.WorkSchedule
	getCalls int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{rows: make(map[[2]interface{}]schedule.WorkSchedule)}
}

func (f *fakeScheduleRepo) key(positionID string, weekday int) [2]interface{} {
	return [2]interface{}{positionID, weekday}
}

func (f *fakeScheduleRepo) GetByPositionAndWeekday(_ context.Context, positionID string, weekday int) (schedule.WorkSchedule, error) {
	f.getCalls++
	ws, ok := f.rows[f.key(positionID, weekday)]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotConfigured
	}
	return ws, nil
}

func (f *fakeScheduleRepo) ListByPosition(_ context.Context, positionID string) ([]schedule.WorkSchedule, error) {
	var result []schedule.WorkSchedule
	for wd := 1; wd <= 7; wd++ {
		if ws, ok := f.rows[f.key(positionID, wd)]; ok {
			result = append(result, ws)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	f.rows[f.key(ws.PositionID, ws.Weekday)] = ws
	return ws, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, positionID string, weekday int) error {
	k := f.key(positionID, weekday)
	if _, ok := f.rows[k]; !ok {
		return schedule.ErrScheduleNotConfigured
	}
	delete(f.rows, k)
	return nil
}

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func strPtr(s string) *string { return &s }

func jakartaLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func TestResolveWorkday(t *testing.T) {
	loc := jakartaLoc(t)
	repo := newFakeScheduleRepo()
	repo.rows[repo.key("pos-1", 1)] = schedule.WorkSchedule{
		PositionID: "pos-1",
		Weekday:    1,
		EntryTime:  strPtr("07:30"),
		ExitTime:   strPtr("16:00"),
	}

	svc := NewScheduleService(repo, fakeTransactor{}, loc)

	// 2026-01-05 is a Monday.
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, loc)
	workday, err := svc.Resolve(context.Background(), "pos-1", date)
	require.NoError(t, err)

	assert.False(t, workday.IsDayOff)
	assert.Equal(t, time.Date(2026, 1, 5, 7, 30, 0, 0, loc), workday.EntryAt)
	assert.Equal(t, time.Date(2026, 1, 5, 16, 0, 0, 0, loc), workday.ExitAt)
}

func TestResolveDayOff(t *testing.T) {
	loc := jakartaLoc(t)
	repo := newFakeScheduleRepo()
	repo.rows[repo.key("pos-1", 7)] = schedule.WorkSchedule{
		PositionID: "pos-1",
		Weekday:    7,
		IsDayOff:   true,
	}

	svc := NewScheduleService(repo, fakeTransactor{}, loc)

	// 2026-01-04 is a Sunday.
	date := time.Date(2026, 1, 4, 0, 0, 0, 0, loc)
	workday, err := svc.Resolve(context.Background(), "pos-1", date)
	require.NoError(t, err)

	assert.True(t, workday.IsDayOff)
	assert.True(t, workday.EntryAt.IsZero())
	assert.True(t, workday.ExitAt.IsZero())
}

func TestResolveNotConfigured(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(), fakeTransactor{}, jakartaLoc(t))

	_, err := svc.Resolve(context.Background(), "pos-unknown", time.Now())
	assert.ErrorIs(t, err, schedule.ErrScheduleNotConfigured)
}

func TestResolveUsesCache(t *testing.T) {
	loc := jakartaLoc(t)
	repo := newFakeScheduleRepo()
	repo.rows[repo.key("pos-1", 1)] = schedule.WorkSchedule{
		PositionID: "pos-1",
		Weekday:    1,
		EntryTime:  strPtr("07:30"),
		ExitTime:   strPtr("16:00"),
	}

	svc := NewScheduleService(repo, fakeTransactor{}, loc)

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, loc)
	_, err := svc.Resolve(context.Background(), "pos-1", date)
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), "pos-1", date.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls, "second resolve for the same weekday should hit the cache")
}

func TestUpsertWeeklyInvalidatesCache(t *testing.T) {
	loc := jakartaLoc(t)
	repo := newFakeScheduleRepo()
	repo.rows[repo.key("pos-1", 1)] = schedule.WorkSchedule{
		PositionID: "pos-1",
		Weekday:    1,
		EntryTime:  strPtr("07:30"),
		ExitTime:   strPtr("16:00"),
	}

	svc := NewScheduleService(repo, fakeTransactor{}, loc)

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, loc)
	workday, err := svc.Resolve(context.Background(), "pos-1", date)
	require.NoError(t, err)
	assert.Equal(t, 7, workday.EntryAt.Hour())

	_, err = svc.UpsertWeekly(context.Background(), schedule.UpsertWeeklyScheduleRequest{
		PositionID: "pos-1",
		Days: []schedule.UpsertScheduleDayRequest{
			{Weekday: 1, EntryTime: strPtr("09:00"), ExitTime: strPtr("17:00")},
		},
	})
	require.NoError(t, err)

	workday, err = svc.Resolve(context.Background(), "pos-1", date)
	require.NoError(t, err)
	assert.Equal(t, 9, workday.EntryAt.Hour(), "resolve after upsert should see the new entry time")
}

func TestUpsertWeeklyValidation(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(), fakeTransactor{}, jakartaLoc(t))

	tests := []struct {
		name    string
		req     schedule.UpsertWeeklyScheduleRequest
		wantErr error
	}{
		{
			name: "day off with times",
			req: schedule.UpsertWeeklyScheduleRequest{
				PositionID: "pos-1",
				Days: []schedule.UpsertScheduleDayRequest{
					{Weekday: 6, IsDayOff: true, EntryTime: strPtr("08:00")},
				},
			},
			wantErr: schedule.ErrDayOffHasTimes,
		},
		{
			name: "workday without times",
			req: schedule.UpsertWeeklyScheduleRequest{
				PositionID: "pos-1",
				Days:       []schedule.UpsertScheduleDayRequest{{Weekday: 1}},
			},
			wantErr: schedule.ErrWorkdayNeedsTimes,
		},
		{
			name: "invalid weekday",
			req: schedule.UpsertWeeklyScheduleRequest{
				PositionID: "pos-1",
				Days: []schedule.UpsertScheduleDayRequest{
					{Weekday: 8, EntryTime: strPtr("08:00"), ExitTime: strPtr("16:00")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertWeekly(context.Background(), tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDeleteDayInvalidatesCache(t *testing.T) {
	loc := jakartaLoc(t)
	repo := newFakeScheduleRepo()
	repo.rows[repo.key("pos-1", 1)] = schedule.WorkSchedule{
		PositionID: "pos-1",
		Weekday:    1,
		EntryTime:  strPtr("07:30"),
		ExitTime:   strPtr("16:00"),
	}

	svc := NewScheduleService(repo, fakeTransactor{}, loc)

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, loc)
	_, err := svc.Resolve(context.Background(), "pos-1", date)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDay(context.Background(), "pos-1", 1))

	_, err = svc.Resolve(context.Background(), "pos-1", date)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotConfigured)
}
