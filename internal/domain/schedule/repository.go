package schedule

import "context"

type WorkScheduleRepository interface {
	// GetByPositionAndWeekday returns the single schedule row for the pair, or
	// ErrScheduleNotConfigured.
	GetByPositionAndWeekday(ctx context.Context, positionID string, weekday int) (WorkSchedule, error)

	// ListByPosition returns every configured weekday row for a position.
	ListByPosition(ctx context.Context, positionID string) ([]WorkSchedule, error)

	// Upsert creates or replaces the row for (position, weekday).
	Upsert(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)

	// Delete removes the row for (position, weekday).
	Delete(ctx context.Context, positionID string, weekday int) error
}
