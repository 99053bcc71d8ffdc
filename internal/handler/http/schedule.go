package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/schedule"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	UpsertWeekly(w http.ResponseWriter, r *http.Request)
	GetWeekly(w http.ResponseWriter, r *http.Request)
	DeleteDay(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// UpsertWeekly implements ScheduleHandler. HR only.
func (h *scheduleHandlerImpl) UpsertWeekly(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertWeeklyScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.PositionID = chi.URLParam(r, "positionID")

	result, err := h.scheduleService.UpsertWeekly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule saved", result)
}

// GetWeekly implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetWeekly(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetWeekly(r.Context(), chi.URLParam(r, "positionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteDay implements ScheduleHandler. HR only.
func (h *scheduleHandlerImpl) DeleteDay(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(chi.URLParam(r, "weekday"))
	if err != nil {
		response.BadRequest(w, "Weekday must be a number between 1 and 7", nil)
		return
	}

	if err := h.scheduleService.DeleteDay(r.Context(), chi.URLParam(r, "positionID"), weekday); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule day deleted", nil)
}
