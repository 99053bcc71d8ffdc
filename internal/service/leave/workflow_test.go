package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/notification"
)

type fakeLeaveRepo struct {
	requests map[string]*leave.LeaveRequest
	steps    map[string][]leave.ApprovalStep
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		requests: make(map[string]*leave.LeaveRequest),
		steps:    make(map[string][]leave.ApprovalStep),
	}
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	req.ID = fmt.Sprintf("lr-%d", f.nextID)
	req.SubmittedAt = time.Now()
	f.requests[req.ID] = &req
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	copied := *req
	copied.Trail = append([]leave.ApprovalStep(nil), f.steps[id]...)
	return copied, nil
}

func (f *fakeLeaveRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeLeaveRepo) UpdateState(_ context.Context, id string, status leave.LeaveRequestStatus, currentStage *string) error {
	req, ok := f.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.Status = status
	req.CurrentStage = currentStage
	return nil
}

func (f *fakeLeaveRepo) AppendStep(_ context.Context, step leave.ApprovalStep) (leave.ApprovalStep, error) {
	step.ID = fmt.Sprintf("step-%d", len(f.steps[step.LeaveRequestID])+1)
	f.steps[step.LeaveRequestID] = append(f.steps[step.LeaveRequestID], step)
	return step, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var result []leave.LeaveRequest
	for _, req := range f.requests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		result = append(result, *req)
	}
	return result, int64(len(result)), nil
}

type fakeChainRepo struct {
	chains map[string]leave.ApprovalChain
}

func (f *fakeChainRepo) GetByRequesterRole(_ context.Context, requesterRole string) (leave.ApprovalChain, error) {
	chain, ok := f.chains[requesterRole]
	if !ok {
		return leave.ApprovalChain{}, leave.ErrApprovalChainNotConfigured
	}
	return chain, nil
}

func (f *fakeChainRepo) ListAll(_ context.Context) ([]leave.ApprovalChain, error) {
	var result []leave.ApprovalChain
	for _, chain := range f.chains {
		result = append(result, chain)
	}
	return result, nil
}

func (f *fakeChainRepo) Seed(_ context.Context, chains []leave.ApprovalChain) error {
	for _, chain := range chains {
		if _, ok := f.chains[chain.RequesterRole]; !ok {
			f.chains[chain.RequesterRole] = chain
		}
	}
	return nil
}

type fakeEmployeeRepo struct {
	roles map[string]employee.Role
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	role, ok := f.roles[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, Role: role}, nil
}

func (f *fakeEmployeeRepo) GetPlacement(_ context.Context, employeeID string) (employee.Placement, error) {
	role, ok := f.roles[employeeID]
	if !ok {
		return employee.Placement{}, employee.ErrEmployeeNotFound
	}
	return employee.Placement{EmployeeID: employeeID, Role: role}, nil
}

func (f *fakeEmployeeRepo) GetRole(_ context.Context, employeeID string) (employee.Role, error) {
	role, ok := f.roles[employeeID]
	if !ok {
		return "", employee.ErrEmployeeNotFound
	}
	return role, nil
}

func (f *fakeEmployeeRepo) ListActivePlacements(_ context.Context) ([]employee.Placement, error) {
	return nil, nil
}

type fakeReconciler struct {
	calls []leave.LeaveRequest
	err   error
}

func (f *fakeReconciler) Reconcile(_ context.Context, req leave.LeaveRequest) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, req)
	return nil
}

type fakeNotificationService struct {
	sent []notification.CreateNotificationRequest
}

func (f *fakeNotificationService) Notify(req notification.CreateNotificationRequest) {
	f.sent = append(f.sent, req)
}

func (f *fakeNotificationService) ListByRecipient(_ context.Context, _ string, _ int) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotificationService) MarkRead(_ context.Context, _ string, _ []string) error {
	return nil
}

func (f *fakeNotificationService) Shutdown(_ context.Context) error { return nil }

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type workflowFixture struct {
	svc           leave.WorkflowService
	leaveRepo     *fakeLeaveRepo
	reconciler    *fakeReconciler
	notifications *fakeNotificationService
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	leaveRepo := newFakeLeaveRepo()
	chains := &fakeChainRepo{chains: map[string]leave.ApprovalChain{
		string(employee.RoleTenagaPendidik): {
			RequesterRole: string(employee.RoleTenagaPendidik),
			Stages:        []string{string(employee.RoleKepalaSekolah), string(employee.RoleDirekturPendidikan)},
		},
		string(employee.RoleStaffHRD): {
			RequesterRole: string(employee.RoleStaffHRD),
			Stages:        []string{string(employee.RoleKepalaHRD)},
		},
	}}
	employees := &fakeEmployeeRepo{roles: map[string]employee.Role{
		"guru-1":     employee.RoleTenagaPendidik,
		"kepsek-1":   employee.RoleKepalaSekolah,
		"direktur-1": employee.RoleDirekturPendidikan,
		"hrd-1":      employee.RoleStaffHRD,
		"kahrd-1":    employee.RoleKepalaHRD,
	}}
	reconciler := &fakeReconciler{}
	notifications := &fakeNotificationService{}

	svc := NewWorkflowService(leaveRepo, chains, employees, reconciler, fakeTransactor{}, notifications, loc)

	return &workflowFixture{
		svc:           svc,
		leaveRepo:     leaveRepo,
		reconciler:    reconciler,
		notifications: notifications,
	}
}

func (f *workflowFixture) submit(t *testing.T, employeeID string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  "2026-02-02",
		EndDate:    "2026-02-04",
		Reason:     "family matter",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitStartsAtFirstStage(t *testing.T) {
	f := newWorkflowFixture(t)

	resp := f.submit(t, "guru-1")

	assert.Equal(t, string(leave.LeaveRequestStatusUnderReview), resp.Status)
	require.NotNil(t, resp.CurrentStage)
	assert.Equal(t, string(employee.RoleKepalaSekolah), *resp.CurrentStage)
	assert.Equal(t, string(employee.RoleTenagaPendidik), resp.RequesterRole)
	assert.Len(t, f.notifications.sent, 1)
}

func TestSubmitWithoutChain(t *testing.T) {
	f := newWorkflowFixture(t)

	// direktur_pendidikan has no configured chain in this fixture.
	_, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: "direktur-1",
		LeaveType:  "annual",
		StartDate:  "2026-02-02",
		EndDate:    "2026-02-04",
		Reason:     "rest",
	})
	assert.ErrorIs(t, err, leave.ErrApprovalChainNotConfigured)
}

func TestSubmitInvalidDateRange(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: "guru-1",
		LeaveType:  "annual",
		StartDate:  "2026-02-04",
		EndDate:    "2026-02-02",
		Reason:     "oops",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestFullApprovalChain(t *testing.T) {
	f := newWorkflowFixture(t)
	resp := f.submit(t, "guru-1")

	mid, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "kepsek-1", Decision: string(leave.DecisionApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusUnderReview), mid.Status)
	require.NotNil(t, mid.CurrentStage)
	assert.Equal(t, string(employee.RoleDirekturPendidikan), *mid.CurrentStage)
	assert.Empty(t, f.reconciler.calls, "reconciliation must wait for the final stage")

	final, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "direktur-1", Decision: string(leave.DecisionApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusApproved), final.Status)
	assert.Nil(t, final.CurrentStage)
	assert.Len(t, final.Trail, 2)
	assert.Len(t, f.reconciler.calls, 1)
}

func TestRejectionMidChain(t *testing.T) {
	f := newWorkflowFixture(t)
	resp := f.submit(t, "guru-1")

	_, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "kepsek-1", Decision: string(leave.DecisionApproved),
	})
	require.NoError(t, err)

	final, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "direktur-1", Decision: string(leave.DecisionRejected), Comment: "peak season",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.LeaveRequestStatusRejected), final.Status)
	assert.Nil(t, final.CurrentStage)
	assert.Len(t, final.Trail, 2, "trail keeps the earlier approval")
	assert.Empty(t, f.reconciler.calls, "a rejected request never reconciles attendance")
}

func TestReturnedResetsToFirstStage(t *testing.T) {
	f := newWorkflowFixture(t)
	resp := f.submit(t, "guru-1")

	_, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "kepsek-1", Decision: string(leave.DecisionApproved),
	})
	require.NoError(t, err)

	returned, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "direktur-1", Decision: string(leave.DecisionReturned), Comment: "need attachment",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.LeaveRequestStatusUnderReview), returned.Status)
	require.NotNil(t, returned.CurrentStage)
	assert.Equal(t, string(employee.RoleKepalaSekolah), *returned.CurrentStage)
	assert.Len(t, returned.Trail, 2, "the return itself is part of the trail")
}

func TestDecideWrongStage(t *testing.T) {
	f := newWorkflowFixture(t)
	resp := f.submit(t, "guru-1")

	// The direktur is the second stage; the request still waits at the first.
	_, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "direktur-1", Decision: string(leave.DecisionApproved),
	})
	assert.ErrorIs(t, err, leave.ErrNotAuthorizedForStage)
}

func TestDecideTerminalRequest(t *testing.T) {
	f := newWorkflowFixture(t)
	resp := f.submit(t, "hrd-1")

	_, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "kahrd-1", Decision: string(leave.DecisionApproved),
	})
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "kahrd-1", Decision: string(leave.DecisionRejected),
	})
	assert.ErrorIs(t, err, leave.ErrRequestAlreadyTerminal)
}

func TestReconcilerFailureRollsDecisionBack(t *testing.T) {
	f := newWorkflowFixture(t)
	f.reconciler.err = leave.ErrOverlappingLeaveApproved
	resp := f.submit(t, "hrd-1")

	_, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "kahrd-1", Decision: string(leave.DecisionApproved),
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeaveApproved)
}

func TestCancel(t *testing.T) {
	f := newWorkflowFixture(t)
	resp := f.submit(t, "guru-1")

	cancelled, err := f.svc.Cancel(context.Background(), resp.ID, "guru-1")
	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusCancelled), cancelled.Status)
	assert.Nil(t, cancelled.CurrentStage)
}

func TestCancelByNonRequester(t *testing.T) {
	f := newWorkflowFixture(t)
	resp := f.submit(t, "guru-1")

	_, err := f.svc.Cancel(context.Background(), resp.ID, "kepsek-1")
	assert.ErrorIs(t, err, leave.ErrNotRequester)
}

func TestCancelTerminalRequest(t *testing.T) {
	f := newWorkflowFixture(t)
	resp := f.submit(t, "hrd-1")

	_, err := f.svc.Decide(context.Background(), leave.DecideRequest{
		RequestID: resp.ID, ActorID: "kahrd-1", Decision: string(leave.DecisionRejected),
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), resp.ID, "hrd-1")
	assert.ErrorIs(t, err, leave.ErrCannotCancelTerminalRequest)
}
