package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrPlacementNotConfigured = errors.New("employee has no position or office placement")
)
