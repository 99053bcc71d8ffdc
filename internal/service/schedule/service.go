package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/schedule"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type cacheKey struct {
	PositionID string
	Weekday    int
}

// ScheduleServiceImpl resolves work windows with a read-through cache in front
// of the schedule table. Schedules change rarely and are read on every
// check-in, so cache entries live until the position's configuration mutates.
type ScheduleServiceImpl struct {
	schedule.WorkScheduleRepository
	transactor database.Transactor
	loc        *time.Location

	mu    sync.RWMutex
	cache map[cacheKey]schedule.WorkSchedule
}

func NewScheduleService(
	repo schedule.WorkScheduleRepository,
	transactor database.Transactor,
	loc *time.Location,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		WorkScheduleRepository: repo,
		transactor:             transactor,
		loc:                    loc,
		cache:                  make(map[cacheKey]schedule.WorkSchedule),
	}
}

// Resolve implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Resolve(ctx context.Context, positionID string, date time.Time) (schedule.ResolvedWorkday, error) {
	weekday := schedule.Weekday(date.In(s.loc))
	key := cacheKey{PositionID: positionID, Weekday: weekday}

	s.mu.RLock()
	ws, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok {
		var err error
		ws, err = s.WorkScheduleRepository.GetByPositionAndWeekday(ctx, positionID, weekday)
		if err != nil {
			return schedule.ResolvedWorkday{}, err
		}

		s.mu.Lock()
		s.cache[key] = ws
		s.mu.Unlock()
	}

	return s.anchor(ws, date)
}

// anchor turns a weekday row into concrete entry/exit instants on the given
// date in the service's timezone.
func (s *ScheduleServiceImpl) anchor(ws schedule.WorkSchedule, date time.Time) (schedule.ResolvedWorkday, error) {
	if ws.IsDayOff {
		return schedule.ResolvedWorkday{IsDayOff: true}, nil
	}

	if ws.EntryTime == nil || ws.ExitTime == nil {
		return schedule.ResolvedWorkday{}, schedule.ErrWorkdayNeedsTimes
	}

	entry, err := time.Parse("15:04", *ws.EntryTime)
	if err != nil {
		return schedule.ResolvedWorkday{}, fmt.Errorf("failed to parse entry time %q: %w", *ws.EntryTime, err)
	}
	exit, err := time.Parse("15:04", *ws.ExitTime)
	if err != nil {
		return schedule.ResolvedWorkday{}, fmt.Errorf("failed to parse exit time %q: %w", *ws.ExitTime, err)
	}

	local := date.In(s.loc)
	year, month, day := local.Date()

	return schedule.ResolvedWorkday{
		EntryAt: time.Date(year, month, day, entry.Hour(), entry.Minute(), 0, 0, s.loc),
		ExitAt:  time.Date(year, month, day, exit.Hour(), exit.Minute(), 0, 0, s.loc),
	}, nil
}

// UpsertWeekly implements schedule.ScheduleService. All days of the request
// commit as one unit so a half-applied week never becomes visible.
func (s *ScheduleServiceImpl) UpsertWeekly(ctx context.Context, req schedule.UpsertWeeklyScheduleRequest) (schedule.WeeklyScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}
	for _, day := range req.Days {
		if day.IsDayOff && (day.EntryTime != nil || day.ExitTime != nil) {
			return schedule.WeeklyScheduleResponse{}, schedule.ErrDayOffHasTimes
		}
		if !day.IsDayOff && (day.EntryTime == nil || day.ExitTime == nil) {
			return schedule.WeeklyScheduleResponse{}, schedule.ErrWorkdayNeedsTimes
		}
	}

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, day := range req.Days {
			ws := schedule.WorkSchedule{
				PositionID: req.PositionID,
				Weekday:    day.Weekday,
				EntryTime:  day.EntryTime,
				ExitTime:   day.ExitTime,
				IsDayOff:   day.IsDayOff,
				Note:       day.Note,
			}
			if _, err := s.WorkScheduleRepository.Upsert(txCtx, ws); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}

	s.invalidate(req.PositionID)

	return s.GetWeekly(ctx, req.PositionID)
}

// GetWeekly implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetWeekly(ctx context.Context, positionID string) (schedule.WeeklyScheduleResponse, error) {
	rows, err := s.WorkScheduleRepository.ListByPosition(ctx, positionID)
	if err != nil {
		return schedule.WeeklyScheduleResponse{}, err
	}
	if len(rows) == 0 {
		return schedule.WeeklyScheduleResponse{}, schedule.ErrScheduleNotConfigured
	}

	resp := schedule.WeeklyScheduleResponse{PositionID: positionID}
	for _, ws := range rows {
		resp.Days = append(resp.Days, schedule.ScheduleDayResponse{
			Weekday:   ws.Weekday,
			EntryTime: ws.EntryTime,
			ExitTime:  ws.ExitTime,
			IsDayOff:  ws.IsDayOff,
			Note:      ws.Note,
		})
	}
	return resp, nil
}

// DeleteDay implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteDay(ctx context.Context, positionID string, weekday int) error {
	if err := s.WorkScheduleRepository.Delete(ctx, positionID, weekday); err != nil {
		return err
	}
	s.invalidate(positionID)
	return nil
}

func (s *ScheduleServiceImpl) invalidate(positionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for wd := 1; wd <= 7; wd++ {
		delete(s.cache, cacheKey{PositionID: positionID, Weekday: wd})
	}
}
