package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, name, role, position_id, office_id, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.Role, &emp.PositionID, &emp.OfficeID,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (r *employeeRepository) GetPlacement(ctx context.Context, employeeID string) (employee.Placement, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, position_id, office_id, role
		FROM employees
		WHERE id = $1 AND is_active
	`

	var p employee.Placement
	var positionID, officeID *string
	err := q.QueryRow(ctx, query, employeeID).Scan(&p.EmployeeID, &positionID, &officeID, &p.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Placement{}, employee.ErrEmployeeNotFound
		}
		return employee.Placement{}, fmt.Errorf("failed to get placement: %w", err)
	}

	if positionID == nil || officeID == nil {
		return employee.Placement{}, employee.ErrPlacementNotConfigured
	}
	p.PositionID = *positionID
	p.OfficeID = *officeID

	return p, nil
}

func (r *employeeRepository) GetRole(ctx context.Context, employeeID string) (employee.Role, error) {
	q := r.db.Querier(ctx)

	var role employee.Role
	err := q.QueryRow(ctx, `SELECT role FROM employees WHERE id = $1`, employeeID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to get employee role: %w", err)
	}
	return role, nil
}

func (r *employeeRepository) ListActivePlacements(ctx context.Context) ([]employee.Placement, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT id, position_id, office_id, role
		FROM employees
		WHERE is_active AND position_id IS NOT NULL AND office_id IS NOT NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list placements: %w", err)
	}
	defer rows.Close()

	var result []employee.Placement
	for rows.Next() {
		var p employee.Placement
		if err := rows.Scan(&p.EmployeeID, &p.PositionID, &p.OfficeID, &p.Role); err != nil {
			return nil, fmt.Errorf("failed to scan placement row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate placement rows: %w", err)
	}

	return result, nil
}
