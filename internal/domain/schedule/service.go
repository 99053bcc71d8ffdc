package schedule

import (
	"context"
	"time"
)

// ScheduleService resolves expected work windows and owns the HR-facing
// weekly schedule configuration.
type ScheduleService interface {
	// Resolve returns the expected work window for a position on a date, or a
	// day-off marker. It never returns both. Missing configuration surfaces as
	// ErrScheduleNotConfigured.
	Resolve(ctx context.Context, positionID string, date time.Time) (ResolvedWorkday, error)

	UpsertWeekly(ctx context.Context, req UpsertWeeklyScheduleRequest) (WeeklyScheduleResponse, error)
	GetWeekly(ctx context.Context, positionID string) (WeeklyScheduleResponse, error)
	DeleteDay(ctx context.Context, positionID string, weekday int) error
}
