package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO leave_requests (
			employee_id, requester_role, start_date, end_date,
			leave_type, reason, attachment_url, status, current_stage, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.RequesterRole, req.StartDate, req.EndDate,
		req.LeaveType, req.Reason, req.AttachmentURL, req.Status, req.CurrentStage,
	).Scan(&req.ID, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

func (r *leaveRequestRepository) getByID(ctx context.Context, id string, forUpdate bool) (leave.LeaveRequest, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, employee_id, requester_role, start_date, end_date,
			leave_type, reason, attachment_url, status, current_stage,
			submitted_at, created_at, updated_at
		FROM leave_requests
		WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.RequesterRole, &req.StartDate, &req.EndDate,
		&req.LeaveType, &req.Reason, &req.AttachmentURL, &req.Status, &req.CurrentStage,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	trail, err := r.listSteps(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	req.Trail = trail

	return req, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, false)
}

func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *leaveRequestRepository) listSteps(ctx context.Context, requestID string) ([]leave.ApprovalStep, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT id, leave_request_id, stage_name, actor_id, decision, comment, decided_at
		FROM approval_steps
		WHERE leave_request_id = $1
		ORDER BY decided_at, id
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval steps: %w", err)
	}
	defer rows.Close()

	var steps []leave.ApprovalStep
	for rows.Next() {
		var step leave.ApprovalStep
		err := rows.Scan(
			&step.ID, &step.LeaveRequestID, &step.StageName, &step.ActorID,
			&step.Decision, &step.Comment, &step.DecidedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval step row: %w", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate approval step rows: %w", err)
	}

	return steps, nil
}

func (r *leaveRequestRepository) UpdateState(ctx context.Context, id string, status leave.LeaveRequestStatus, currentStage *string) error {
	q := r.db.Querier(ctx)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $2, current_stage = $3, updated_at = NOW()
		WHERE id = $1
	`, id, status, currentStage)
	if err != nil {
		return fmt.Errorf("failed to update leave request state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepository) AppendStep(ctx context.Context, step leave.ApprovalStep) (leave.ApprovalStep, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO approval_steps (leave_request_id, stage_name, actor_id, decision, comment, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		step.LeaveRequestID, step.StageName, step.ActorID, step.Decision, step.Comment, step.DecidedAt,
	).Scan(&step.ID)
	if err != nil {
		return leave.ApprovalStep{}, fmt.Errorf("failed to append approval step: %w", err)
	}

	return step, nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := r.db.Querier(ctx)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM leave_requests lr WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.requester_role, lr.start_date, lr.end_date,
			lr.leave_type, lr.reason, lr.attachment_url, lr.status, lr.current_stage,
			lr.submitted_at, lr.created_at, lr.updated_at, e.name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE %s
		ORDER BY lr.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var result []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.RequesterRole, &req.StartDate, &req.EndDate,
			&req.LeaveType, &req.Reason, &req.AttachmentURL, &req.Status, &req.CurrentStage,
			&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt, &req.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave request rows: %w", err)
	}

	return result, total, nil
}
