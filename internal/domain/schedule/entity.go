package schedule

import "time"

// WorkSchedule is one weekday row of a position's weekly schedule. Exactly one
// row exists per (position, weekday); a day-off row carries no times.
type WorkSchedule struct {
	ID         string
	PositionID string
	Weekday    int // 1=Monday ... 7=Sunday
	EntryTime  *string
	ExitTime   *string
	IsDayOff   bool
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ResolvedWorkday is the expected work window for a position on a concrete
// date, with entry/exit anchored to that date's location.
type ResolvedWorkday struct {
	IsDayOff bool
	EntryAt  time.Time
	ExitAt   time.Time
}

// Weekday converts a calendar date to the 1=Monday..7=Sunday index the
// schedule table uses.
func Weekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
