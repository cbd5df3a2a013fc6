package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/leave"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/middleware"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
	EmployeeBalance(w http.ResponseWriter, r *http.Request)
	UpdateBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func actorFrom(r *http.Request) leave.Actor {
	return leave.Actor{
		ID:   middleware.UserID(r),
		Name: middleware.UserName(r),
		Role: string(middleware.UserRole(r)),
	}
}

// Apply implements LeaveHandler.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Apply(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req leave.ApproveLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.leaveService.Approve(r.Context(), chi.URLParam(r, "id"), actorFrom(r), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", nil)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.leaveService.Reject(r.Context(), chi.URLParam(r, "id"), actorFrom(r), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", nil)
}

// Get implements LeaveHandler.
func (h *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.leaveService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Employees can only read their own requests
	userID := middleware.UserID(r)
	if middleware.UserRole(r) != auth.RoleAdmin && request.EmployeeID != userID {
		response.Forbidden(w, "Not your leave request")
		return
	}

	response.Success(w, request)
}

// ListMine implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListByEmployee(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListAll implements LeaveHandler.
func (h *LeaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// MyBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.leaveService.GetBalance(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// EmployeeBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) EmployeeBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.leaveService.GetBalance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// UpdateBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.leaveService.UpdateBalance(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
