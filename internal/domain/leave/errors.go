package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")

	// Validation errors
	ErrInvalidDateRange = errors.New("start date must not be after end date")

	// State-conflict errors
	ErrRequestAlreadyTerminal      = errors.New("leave request is already approved, rejected or cancelled")
	ErrCannotCancelTerminalRequest = errors.New("a terminal leave request cannot be cancelled")

	// Policy-violation errors
	ErrNotAuthorizedForStage = errors.New("actor role does not match the pending approval stage")
	ErrNotRequester          = errors.New("only the original requester may cancel")

	// Data-integrity errors: logged, escalated to HR, transaction rolled back.
	ErrApprovalChainNotConfigured = errors.New("no approval chain configured for requester role")
	ErrOverlappingLeaveApproved   = errors.New("date already covered by a different approved leave request")
)
