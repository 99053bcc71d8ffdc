package leave

import "context"

// LeaveRequestRepository persists requests and their append-only trail.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	// GetByID loads a request including its approval trail, oldest step first.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetByIDForUpdate is GetByID with a row-level lock on the request; must
	// be called inside a transaction so concurrent decisions serialize.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)

	// UpdateState writes status and current stage in one statement.
	UpdateState(ctx context.Context, id string, status LeaveRequestStatus, currentStage *string) error

	// AppendStep appends one audit entry; existing entries are never touched.
	AppendStep(ctx context.Context, step ApprovalStep) (ApprovalStep, error)

	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
}

// ApprovalChainRepository reads the role-keyed chain configuration.
type ApprovalChainRepository interface {
	// GetByRequesterRole returns the ordered approver roles, or
	// ErrApprovalChainNotConfigured when the role has no chain.
	GetByRequesterRole(ctx context.Context, requesterRole string) (ApprovalChain, error)

	ListAll(ctx context.Context) ([]ApprovalChain, error)

	// Seed inserts chains that do not exist yet; existing configuration wins.
	Seed(ctx context.Context, chains []ApprovalChain) error
}
