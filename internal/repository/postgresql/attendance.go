package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/attendance"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, check_in_at, check_out_at,
	check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
	status, late_minutes, note, attachment_url, recorded_by, leave_request_id,
	created_at, updated_at, deleted_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckInAt, &att.CheckOutAt,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.Status, &att.LateMinutes, &att.Note, &att.AttachmentURL, &att.RecordedBy, &att.LeaveRequestID,
		&att.CreatedAt, &att.UpdatedAt, &att.DeletedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository. A concurrent insert for
// the same worker-day trips the unique index and surfaces as
// ErrAlreadyCheckedIn so the caller sees the same error as a plain double
// check-in.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := a.db.Querier(ctx)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in_at, check_out_at,
			check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
			status, late_minutes, note, attachment_url, recorded_by, leave_request_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.CheckInAt,
		att.CheckOutAt,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.Status,
		att.LateMinutes,
		att.Note,
		att.AttachmentURL,
		att.RecordedBy,
		att.LeaveRequestID,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := a.db.Querier(ctx)

	query := `SELECT` + attendanceColumns + `
		FROM attendances
		WHERE id = $1 AND deleted_at IS NULL`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return att, nil
}

func (a *attendanceRepository) getByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, forUpdate bool) (*attendance.Attendance, error) {
	q := a.db.Querier(ctx)

	query := `SELECT` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2 AND deleted_at IS NULL`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return a.getByEmployeeAndDate(ctx, employeeID, date, false)
}

func (a *attendanceRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return a.getByEmployeeAndDate(ctx, employeeID, date, true)
}

func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := a.db.Querier(ctx)

	query := `
		UPDATE attendances SET
			check_in_at = $2, check_out_at = $3,
			check_in_latitude = $4, check_in_longitude = $5,
			check_out_latitude = $6, check_out_longitude = $7,
			status = $8, late_minutes = $9, note = $10, attachment_url = $11,
			recorded_by = $12, leave_request_id = $13, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.CheckInAt, att.CheckOutAt,
		att.CheckInLatitude, att.CheckInLongitude,
		att.CheckOutLatitude, att.CheckOutLongitude,
		att.Status, att.LateMinutes, att.Note, att.AttachmentURL,
		att.RecordedBy, att.LeaveRequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := a.db.Querier(ctx)

	conditions := []string{"a.deleted_at IS NULL"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, *filter.DateTo)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.date, a.check_in_at, a.check_out_at,
			a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
			a.status, a.late_minutes, a.note, a.attachment_url, a.recorded_by, a.leave_request_id,
			a.created_at, a.updated_at, a.deleted_at, e.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.name ASC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckInAt, &att.CheckOutAt,
			&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
			&att.Status, &att.LateMinutes, &att.Note, &att.AttachmentURL, &att.RecordedBy, &att.LeaveRequestID,
			&att.CreatedAt, &att.UpdatedAt, &att.DeletedAt, &att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return result, total, nil
}

func (a *attendanceRepository) SoftDelete(ctx context.Context, id string) error {
	q := a.db.Querier(ctx)

	tag, err := q.Exec(ctx, `
		UPDATE attendances SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (a *attendanceRepository) ListUnrecordedEmployees(ctx context.Context, date time.Time) ([]string, error) {
	q := a.db.Querier(ctx)

	query := `
		SELECT e.id
		FROM employees e
		LEFT JOIN attendances a
			ON a.employee_id = e.id AND a.date = $1 AND a.deleted_at IS NULL
		WHERE e.is_active AND a.id IS NULL
		ORDER BY e.id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list unrecorded employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return ids, nil
}
