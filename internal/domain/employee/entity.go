package employee

import "time"

// Role is the organizational role of an employee. It selects the approval
// chain a leave request travels through and gates administrative endpoints.
type Role string

const (
	RoleTenagaPendidik     Role = "tenaga_pendidik"
	RoleKepalaSekolah      Role = "kepala_sekolah"
	RoleDirekturPendidikan Role = "direktur_pendidikan"
	RoleStaffHRD           Role = "staff_hrd"
	RoleKepalaHRD          Role = "kepala_hrd"
)

var RoleValues = []string{
	string(RoleTenagaPendidik),
	string(RoleKepalaSekolah),
	string(RoleDirekturPendidikan),
	string(RoleStaffHRD),
	string(RoleKepalaHRD),
}

// IsHR reports whether the role may perform administrative attendance and
// schedule operations.
func (r Role) IsHR() bool {
	return r == RoleStaffHRD || r == RoleKepalaHRD
}

type Employee struct {
	ID         string
	Name       string
	Role       Role
	PositionID string
	OfficeID   string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Placement is the job-placement view the attendance path needs: which
// position's schedule applies and which office the geofence is anchored to.
type Placement struct {
	EmployeeID string
	PositionID string
	OfficeID   string
	Role       Role
}
