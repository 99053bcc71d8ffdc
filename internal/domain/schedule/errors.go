package schedule

import "errors"

var (
	// ErrScheduleNotConfigured means no schedule row exists for the
	// (position, weekday). Callers must treat this as "cannot determine
	// lateness", never as a day off.
	ErrScheduleNotConfigured = errors.New("no work schedule configured for this position and weekday")

	ErrDayOffHasTimes    = errors.New("a day-off schedule must not carry entry or exit times")
	ErrWorkdayNeedsTimes = errors.New("a workday schedule requires entry and exit times")
)
