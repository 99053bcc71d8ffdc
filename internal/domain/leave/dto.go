package leave

import (
	"time"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID    string  `json:"-"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"-"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must use YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must use YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	RequestID string `json:"-"`
	ActorID   string `json:"-"`
	Decision  string `json:"decision"`
	Comment   string `json:"comment"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "request_id is required"})
	}
	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{Field: "actor_id", Message: "actor_id is required"})
	}
	if !validator.IsInSlice(r.Decision, DecisionValues) {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "decision must be approved, rejected or returned"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type ApprovalStepResponse struct {
	StageName string  `json:"stage_name"`
	ActorID   string  `json:"actor_id"`
	Decision  string  `json:"decision"`
	Comment   *string `json:"comment,omitempty"`
	DecidedAt string  `json:"decided_at"`
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	RequesterRole string  `json:"requester_role"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	LeaveType     string  `json:"leave_type"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`

	Status       string  `json:"status"`
	CurrentStage *string `json:"current_stage,omitempty"`

	SubmittedAt string                 `json:"submitted_at"`
	Trail       []ApprovalStepResponse `json:"approval_trail"`
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

// MapToResponse converts a LeaveRequest entity including its trail.
func MapToResponse(req LeaveRequest) LeaveRequestResponse {
	trail := make([]ApprovalStepResponse, 0, len(req.Trail))
	for _, step := range req.Trail {
		trail = append(trail, ApprovalStepResponse{
			StageName: step.StageName,
			ActorID:   step.ActorID,
			Decision:  string(step.Decision),
			Comment:   step.Comment,
			DecidedAt: step.DecidedAt.Format(time.RFC3339),
		})
	}

	return LeaveRequestResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  req.EmployeeName,
		RequesterRole: req.RequesterRole,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		LeaveType:     req.LeaveType,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        string(req.Status),
		CurrentStage:  req.CurrentStage,
		SubmittedAt:   req.SubmittedAt.Format(time.RFC3339),
		Trail:         trail,
	}
}
