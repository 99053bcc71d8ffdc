package leave

import "context"

// WorkflowService drives a leave request through its role-keyed approval
// chain.
type WorkflowService interface {
	// Submit creates the request at the first stage of the requester's chain
	// and moves it straight to under_review.
	Submit(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// Decide applies one approver decision. The audit step and the resulting
	// stage/status change commit as a single unit.
	Decide(ctx context.Context, req DecideRequest) (LeaveRequestResponse, error)

	// Cancel withdraws a non-terminal request; only the requester may call it.
	Cancel(ctx context.Context, requestID, actorID string) (LeaveRequestResponse, error)

	Get(ctx context.Context, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
}

// Reconciler backfills attendance for an approved request's date range. It is
// invoked inside the approving transaction so approval and reconciliation
// commit or roll back together.
type Reconciler interface {
	Reconcile(ctx context.Context, req LeaveRequest) error
}
