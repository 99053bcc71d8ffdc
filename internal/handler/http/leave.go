package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/handler/http/middleware"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/handler/http/response"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/storage"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	workflowService leave.WorkflowService
	fileStorage     storage.FileStorage
}

func NewLeaveHandler(workflowService leave.WorkflowService, fileStorage storage.FileStorage) LeaveHandler {
	return &leaveHandlerImpl{
		workflowService: workflowService,
		fileStorage:     fileStorage,
	}
}

// Submit implements LeaveHandler. The request body is multipart: a JSON 'data'
// field plus an optional 'document' file (doctor's letter and the like).
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.EmployeeID = middleware.EmployeeID(r.Context())

	file, fileHeader, err := r.FormFile("document")
	if err == nil {
		defer file.Close()

		path := fmt.Sprintf("leave-documents/%s/%s%s",
			req.EmployeeID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
		url, uploadErr := h.fileStorage.Upload(r.Context(), file, path, fileHeader.Header.Get("Content-Type"))
		if uploadErr != nil {
			slog.Error("Failed to store leave document", "error", uploadErr)
			response.InternalServerError(w, "Failed to store supporting document")
			return
		}
		req.AttachmentURL = &url
	} else if err != http.ErrMissingFile {
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.workflowService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.RequestID = chi.URLParam(r, "id")
	req.ActorID = middleware.EmployeeID(r.Context())

	result, err := h.workflowService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", result)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.workflowService.Cancel(r.Context(), chi.URLParam(r, "id"), middleware.EmployeeID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", result)
}

// Get implements LeaveHandler. Requesters see their own requests; HR sees all.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.workflowService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	role := employee.Role(middleware.Role(r.Context()))
	if !role.IsHR() && result.EmployeeID != middleware.EmployeeID(r.Context()) &&
		(result.CurrentStage == nil || *result.CurrentStage != string(role)) {
		response.Forbidden(w, "You may only view your own leave requests", nil)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler. HR only.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseLeaveFilter(r)

	result, err := h.workflowService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetMyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	filter := parseLeaveFilter(r)
	employeeID := middleware.EmployeeID(r.Context())
	filter.EmployeeID = &employeeID

	result, err := h.workflowService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func parseLeaveFilter(r *http.Request) leave.LeaveRequestFilter {
	q := r.URL.Query()

	filter := leave.LeaveRequestFilter{
		Page:  parseIntQuery(q.Get("page"), 1),
		Limit: parseIntQuery(q.Get("limit"), 20),
	}

	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}

	return filter
}
