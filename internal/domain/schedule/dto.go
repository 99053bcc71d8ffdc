package schedule

import "github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/validator"

type UpsertScheduleDayRequest struct {
	Weekday   int     `json:"weekday"`
	EntryTime *string `json:"entry_time,omitempty"`
	ExitTime  *string `json:"exit_time,omitempty"`
	IsDayOff  bool    `json:"is_day_off"`
	Note      *string `json:"note,omitempty"`
}

type UpsertWeeklyScheduleRequest struct {
	PositionID string
	Days       []UpsertScheduleDayRequest `json:"days"`
}

func (r *UpsertWeeklyScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PositionID) {
		errs = append(errs, validator.ValidationError{Field: "position_id", Message: "position_id is required"})
	}
	if len(r.Days) == 0 {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "at least one day is required"})
	}

	seen := make(map[int]bool)
	for _, day := range r.Days {
		if !validator.IsValidWeekday(day.Weekday) {
			errs = append(errs, validator.ValidationError{Field: "weekday", Message: "weekday must be between 1 (Monday) and 7 (Sunday)"})
			continue
		}
		if seen[day.Weekday] {
			errs = append(errs, validator.ValidationError{Field: "days", Message: "duplicate weekday in request"})
		}
		seen[day.Weekday] = true

		if day.EntryTime != nil {
			if _, ok := validator.IsValidClockTime(*day.EntryTime); !ok {
				errs = append(errs, validator.ValidationError{Field: "entry_time", Message: "entry_time must use HH:MM format"})
			}
		}
		if day.ExitTime != nil {
			if _, ok := validator.IsValidClockTime(*day.ExitTime); !ok {
				errs = append(errs, validator.ValidationError{Field: "exit_time", Message: "exit_time must use HH:MM format"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleDayResponse struct {
	Weekday   int     `json:"weekday"`
	EntryTime *string `json:"entry_time,omitempty"`
	ExitTime  *string `json:"exit_time,omitempty"`
	IsDayOff  bool    `json:"is_day_off"`
	Note      *string `json:"note,omitempty"`
}

type WeeklyScheduleResponse struct {
	PositionID string                `json:"position_id"`
	Days       []ScheduleDayResponse `json:"days"`
}
