package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusSubmitted   LeaveRequestStatus = "submitted"
	LeaveRequestStatusUnderReview LeaveRequestStatus = "under_review"
	LeaveRequestStatusApproved    LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected    LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled   LeaveRequestStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are permitted.
func (s LeaveRequestStatus) IsTerminal() bool {
	return s == LeaveRequestStatusApproved ||
		s == LeaveRequestStatusRejected ||
		s == LeaveRequestStatusCancelled
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
	DecisionReturned Decision = "returned"
)

var DecisionValues = []string{
	string(DecisionApproved),
	string(DecisionRejected),
	string(DecisionReturned),
}

// ApprovalStep is one append-only audit entry in a request's trail. Steps are
// never mutated or deleted and never outlive their request.
type ApprovalStep struct {
	ID             string
	LeaveRequestID string
	StageName      string
	ActorID        string
	Decision       Decision
	Comment        *string
	DecidedAt      time.Time
}

// LeaveRequest travels a role-keyed approval chain. CurrentStage holds the
// approver role whose decision is pending, or nil once the request is
// terminal. RequesterRole is snapshotted at submission so later role changes
// cannot corrupt an in-flight chain.
type LeaveRequest struct {
	ID            string
	EmployeeID    string
	RequesterRole string

	StartDate time.Time
	EndDate   time.Time

	LeaveType     string
	Reason        string
	AttachmentURL *string

	Status       LeaveRequestStatus
	CurrentStage *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Trail []ApprovalStep

	// Joined for responses
	EmployeeName *string
}

// ApprovalChain maps a requester role to the ordered approver roles a request
// must pass through. Configuration data, not code.
type ApprovalChain struct {
	RequesterRole string
	Stages        []string
}

// NextStage returns the stage after current, or nil when current is the last
// stage of the chain.
func (c ApprovalChain) NextStage(current string) *string {
	for i, stage := range c.Stages {
		if stage == current && i+1 < len(c.Stages) {
			next := c.Stages[i+1]
			return &next
		}
	}
	return nil
}

// Contains reports whether stage is part of the chain.
func (c ApprovalChain) Contains(stage string) bool {
	for _, s := range c.Stages {
		if s == stage {
			return true
		}
	}
	return false
}
