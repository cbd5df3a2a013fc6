package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/tracking"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/middleware"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/response"
)

type TrackingHandler interface {
	EnableSharing(w http.ResponseWriter, r *http.Request)
	DisableSharing(w http.ResponseWriter, r *http.Request)
	ReportLocation(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	DayReport(w http.ResponseWriter, r *http.Request)
}

type TrackingHandlerImpl struct {
	trackingService tracking.TrackingService
}

func NewTrackingHandler(trackingService tracking.TrackingService) TrackingHandler {
	return &TrackingHandlerImpl{trackingService: trackingService}
}

// EnableSharing implements TrackingHandler.
func (h *TrackingHandlerImpl) EnableSharing(w http.ResponseWriter, r *http.Request) {
	status, err := h.trackingService.EnableSharing(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// DisableSharing implements TrackingHandler.
func (h *TrackingHandlerImpl) DisableSharing(w http.ResponseWriter, r *http.Request) {
	if err := h.trackingService.DisableSharing(r.Context(), middleware.UserID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location sharing disabled", nil)
}

// ReportLocation implements TrackingHandler.
func (h *TrackingHandlerImpl) ReportLocation(w http.ResponseWriter, r *http.Request) {
	var req tracking.ReportLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	loc, err := h.trackingService.ReportLocation(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loc)
}

// Status implements TrackingHandler.
func (h *TrackingHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.trackingService.Status(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// DayReport implements TrackingHandler. Admin export of one employee's day.
func (h *TrackingHandlerImpl) DayReport(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	day := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(w, "date must be YYYY-MM-DD", nil)
			return
		}
		day = parsed
	}

	report, err := h.trackingService.DayReport(r.Context(), employeeID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
