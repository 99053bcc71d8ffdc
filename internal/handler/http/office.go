package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/office"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/fixtures"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/handler/http/response"
)

// radiusOrDefault substitutes the standard geofence radius when the request
// leaves radius_meters unset. A zero radius would reject every check-in.
func radiusOrDefault(radiusMeters int) int {
	if radiusMeters == 0 {
		return fixtures.DefaultOfficeRadiusMeters
	}
	return radiusMeters
}

type OfficeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type officeHandlerImpl struct {
	officeRepo office.OfficeLocationRepository
}

func NewOfficeHandler(officeRepo office.OfficeLocationRepository) OfficeHandler {
	return &officeHandlerImpl{
		officeRepo: officeRepo,
	}
}

// Create implements OfficeHandler. HR only.
func (h *officeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req office.UpsertOfficeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.officeRepo.Create(r.Context(), office.OfficeLocation{
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radiusOrDefault(req.RadiusMeters),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Office location created", created)
}

// Get implements OfficeHandler.
func (h *officeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	loc, err := h.officeRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loc)
}

// List implements OfficeHandler.
func (h *officeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.officeRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, locations)
}

// Update implements OfficeHandler. HR only.
func (h *officeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req office.UpsertOfficeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	loc := office.OfficeLocation{
		ID:           chi.URLParam(r, "id"),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radiusOrDefault(req.RadiusMeters),
	}
	if err := h.officeRepo.Update(r.Context(), loc); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location updated", loc)
}
