package leave

import (
	"context"
	"time"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/notification"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type WorkflowServiceImpl struct {
	leave.LeaveRequestRepository
	leave.ApprovalChainRepository
	employee.EmployeeRepository
	reconciler          leave.Reconciler
	transactor          database.Transactor
	notificationService notification.Service
	loc                 *time.Location
}

func NewWorkflowService(
	leaveRepo leave.LeaveRequestRepository,
	chainRepo leave.ApprovalChainRepository,
	employeeRepo employee.EmployeeRepository,
	reconciler leave.Reconciler,
	transactor database.Transactor,
	notificationService notification.Service,
	loc *time.Location,
) leave.WorkflowService {
	return &WorkflowServiceImpl{
		LeaveRequestRepository:  leaveRepo,
		ApprovalChainRepository: chainRepo,
		EmployeeRepository:      employeeRepo,
		reconciler:              reconciler,
		transactor:              transactor,
		notificationService:     notificationService,
		loc:                     loc,
	}
}

// Submit implements leave.WorkflowService. The requester's role is snapshotted
// on the request so a later role change cannot move an in-flight request onto
// a different chain.
func (s *WorkflowServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Validate guarantees the format, so only the ordering can still be wrong.
	startDate, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	endDate, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)
	if startDate.After(endDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	role, err := s.EmployeeRepository.GetRole(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	chain, err := s.ApprovalChainRepository.GetByRequesterRole(ctx, string(role))
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	firstStage := chain.Stages[0]
	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID:    req.EmployeeID,
		RequesterRole: string(role),
		StartDate:     startDate,
		EndDate:       endDate,
		LeaveType:     req.LeaveType,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        leave.LeaveRequestStatusUnderReview,
		CurrentStage:  &firstStage,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notificationService.Notify(notification.CreateNotificationRequest{
		RecipientID: created.EmployeeID,
		Type:        notification.TypeLeaveSubmitted,
		Title:       "Leave request submitted",
		Message:     "Your leave request is now under review at stage " + firstStage + ".",
		ReferenceID: &created.ID,
	})

	return leave.MapToResponse(created), nil
}

// Decide implements leave.WorkflowService. The audit step, the state change
// and, on final approval, attendance reconciliation commit as one transaction.
func (s *WorkflowServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var result leave.LeaveRequest
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if request.Status.IsTerminal() {
			return leave.ErrRequestAlreadyTerminal
		}

		actorRole, err := s.EmployeeRepository.GetRole(txCtx, req.ActorID)
		if err != nil {
			return err
		}
		if request.CurrentStage == nil || string(actorRole) != *request.CurrentStage {
			return leave.ErrNotAuthorizedForStage
		}

		var comment *string
		if req.Comment != "" {
			comment = &req.Comment
		}
		step := leave.ApprovalStep{
			LeaveRequestID: request.ID,
			StageName:      *request.CurrentStage,
			ActorID:        req.ActorID,
			Decision:       leave.Decision(req.Decision),
			Comment:        comment,
			DecidedAt:      time.Now().In(s.loc),
		}
		if _, err := s.LeaveRequestRepository.AppendStep(txCtx, step); err != nil {
			return err
		}

		switch leave.Decision(req.Decision) {
		case leave.DecisionRejected:
			err = s.LeaveRequestRepository.UpdateState(txCtx, request.ID, leave.LeaveRequestStatusRejected, nil)

		case leave.DecisionReturned:
			// A return sends the request back to the start of its chain; the
			// trail keeps every step taken so far.
			chain, chainErr := s.ApprovalChainRepository.GetByRequesterRole(txCtx, request.RequesterRole)
			if chainErr != nil {
				return chainErr
			}
			firstStage := chain.Stages[0]
			err = s.LeaveRequestRepository.UpdateState(txCtx, request.ID, leave.LeaveRequestStatusUnderReview, &firstStage)

		case leave.DecisionApproved:
			chain, chainErr := s.ApprovalChainRepository.GetByRequesterRole(txCtx, request.RequesterRole)
			if chainErr != nil {
				return chainErr
			}
			next := chain.NextStage(*request.CurrentStage)
			if next != nil {
				err = s.LeaveRequestRepository.UpdateState(txCtx, request.ID, leave.LeaveRequestStatusUnderReview, next)
			} else {
				if err = s.LeaveRequestRepository.UpdateState(txCtx, request.ID, leave.LeaveRequestStatusApproved, nil); err != nil {
					return err
				}
				request.Status = leave.LeaveRequestStatusApproved
				err = s.reconciler.Reconcile(txCtx, request)
			}
		}
		if err != nil {
			return err
		}

		result, err = s.LeaveRequestRepository.GetByID(txCtx, request.ID)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notifyDecision(result, req.Decision)

	return leave.MapToResponse(result), nil
}

func (s *WorkflowServiceImpl) notifyDecision(request leave.LeaveRequest, decision string) {
	message := "Your leave request was " + decision
	if request.CurrentStage != nil {
		message += " and moved to stage " + *request.CurrentStage
	}
	message += "."

	s.notificationService.Notify(notification.CreateNotificationRequest{
		RecipientID: request.EmployeeID,
		Type:        notification.TypeLeaveDecided,
		Title:       "Leave request update",
		Message:     message,
		ReferenceID: &request.ID,
	})
}

// Cancel implements leave.WorkflowService.
func (s *WorkflowServiceImpl) Cancel(ctx context.Context, requestID, actorID string) (leave.LeaveRequestResponse, error) {
	var result leave.LeaveRequest
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.EmployeeID != actorID {
			return leave.ErrNotRequester
		}
		if request.Status.IsTerminal() {
			return leave.ErrCannotCancelTerminalRequest
		}

		if err := s.LeaveRequestRepository.UpdateState(txCtx, request.ID, leave.LeaveRequestStatusCancelled, nil); err != nil {
			return err
		}

		result, err = s.LeaveRequestRepository.GetByID(txCtx, request.ID)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.MapToResponse(result), nil
}

// Get implements leave.WorkflowService.
func (s *WorkflowServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.MapToResponse(request), nil
}

// List implements leave.WorkflowService.
func (s *WorkflowServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	resp := leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Requests:   make([]leave.LeaveRequestResponse, 0, len(requests)),
	}
	for _, request := range requests {
		resp.Requests = append(resp.Requests, leave.MapToResponse(request))
	}
	return resp, nil
}
