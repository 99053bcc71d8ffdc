package fixtures

import (
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
)

// DefaultOfficeRadiusMeters is applied when an office is registered without an
// explicit geofence radius.
const DefaultOfficeRadiusMeters = 500

// DefaultApprovalChains is the seed configuration for the role-keyed approval
// workflow. HR edits these in the database afterwards; the seed only fills
// empty configuration.
func DefaultApprovalChains() []leave.ApprovalChain {
	return []leave.ApprovalChain{
		{
			RequesterRole: string(employee.RoleTenagaPendidik),
			Stages: []string{
				string(employee.RoleKepalaSekolah),
				string(employee.RoleDirekturPendidikan),
			},
		},
		{
			RequesterRole: string(employee.RoleKepalaSekolah),
			Stages: []string{
				string(employee.RoleDirekturPendidikan),
			},
		},
		{
			RequesterRole: string(employee.RoleStaffHRD),
			Stages: []string{
				string(employee.RoleKepalaHRD),
			},
		},
	}
}
