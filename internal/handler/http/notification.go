package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/middleware"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/response"
	"github.com/oidpl/workforce-backend-go/internal/pkg/jwt"
	"github.com/oidpl/workforce-backend-go/internal/pkg/sse"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.NotificationService
	jwtService          jwt.Service
	hub                 *sse.Hub
}

func NewNotificationHandler(notificationService notification.NotificationService, jwtService jwt.Service, hub *sse.Hub) NotificationHandler {
	return &NotificationHandlerImpl{
		notificationService: notificationService,
		jwtService:          jwtService,
		hub:                 hub,
	}
}

// List implements NotificationHandler.
func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.ListForRecipient(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notifications)
}

// UnreadCount implements NotificationHandler.
func (h *NotificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.UnreadCount(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unread_count": count})
}

// MarkRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.notificationService.MarkRead(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked read", nil)
}

// MarkAllRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkAllRead(r.Context(), middleware.UserID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked read", nil)
}

// Delete implements NotificationHandler.
func (h *NotificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.notificationService.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification deleted", nil)
}

// SSEToken issues a short-lived token the client passes as a query parameter
// when opening the event stream.
func (h *NotificationHandlerImpl) SSEToken(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream handles the SSE connection for real-time notifications and, for the
// admin, live location updates.
func (h *NotificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// SSE cannot send custom headers, so the token travels in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
