package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/schedule"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepository{db: db}
}

func (r *workScheduleRepository) GetByPositionAndWeekday(ctx context.Context, positionID string, weekday int) (schedule.WorkSchedule, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, position_id, weekday, entry_time, exit_time, is_day_off, note, created_at, updated_at
		FROM work_schedules
		WHERE position_id = $1 AND weekday = $2
	`

	var ws schedule.WorkSchedule
	err := q.QueryRow(ctx, query, positionID, weekday).Scan(
		&ws.ID, &ws.PositionID, &ws.Weekday, &ws.EntryTime, &ws.ExitTime,
		&ws.IsDayOff, &ws.Note, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotConfigured
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}
	return ws, nil
}

func (r *workScheduleRepository) ListByPosition(ctx context.Context, positionID string) ([]schedule.WorkSchedule, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, position_id, weekday, entry_time, exit_time, is_day_off, note, created_at, updated_at
		FROM work_schedules
		WHERE position_id = $1
		ORDER BY weekday
	`

	rows, err := q.Query(ctx, query, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	var result []schedule.WorkSchedule
	for rows.Next() {
		var ws schedule.WorkSchedule
		err := rows.Scan(
			&ws.ID, &ws.PositionID, &ws.Weekday, &ws.EntryTime, &ws.ExitTime,
			&ws.IsDayOff, &ws.Note, &ws.CreatedAt, &ws.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work schedule row: %w", err)
		}
		result = append(result, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work schedule rows: %w", err)
	}

	return result, nil
}

// Upsert keeps the one-row-per-(position, weekday) invariant in the database
// itself via the unique constraint.
func (r *workScheduleRepository) Upsert(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO work_schedules (position_id, weekday, entry_time, exit_time, is_day_off, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (position_id, weekday) DO UPDATE SET
			entry_time = EXCLUDED.entry_time,
			exit_time = EXCLUDED.exit_time,
			is_day_off = EXCLUDED.is_day_off,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ws.PositionID, ws.Weekday, ws.EntryTime, ws.ExitTime, ws.IsDayOff, ws.Note,
	).Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to upsert work schedule: %w", err)
	}
	return ws, nil
}

func (r *workScheduleRepository) Delete(ctx context.Context, positionID string, weekday int) error {
	q := r.db.Querier(ctx)

	tag, err := q.Exec(ctx, `
		DELETE FROM work_schedules WHERE position_id = $1 AND weekday = $2
	`, positionID, weekday)
	if err != nil {
		return fmt.Errorf("failed to delete work schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotConfigured
	}
	return nil
}
