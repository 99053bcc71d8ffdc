package employee

import "context"

// EmployeeRepository is the read-only boundary to employee master data, which
// is owned by the surrounding application. The attendance and leave paths only
// ever read placements and roles through it.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetPlacement resolves an employee to the position whose schedule applies
	// and the office whose geofence applies.
	GetPlacement(ctx context.Context, employeeID string) (Placement, error)

	// GetRole resolves an employee to their organizational role.
	GetRole(ctx context.Context, employeeID string) (Role, error)

	// ListActivePlacements returns placements for all active employees. Used by
	// the absence-marking job.
	ListActivePlacements(ctx context.Context) ([]Placement, error)
}
