package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/pkg/clock"
	"github.com/oidpl/workforce-backend-go/internal/pkg/push"
	"github.com/oidpl/workforce-backend-go/internal/pkg/sse"
)

type NotificationServiceImpl struct {
	repo         notification.NotificationRepository
	employeeRepo employee.EmployeeRepository
	hub          *sse.Hub
	push         push.Sender
	clock        clock.Clock
}

func NewNotificationService(
	repo notification.NotificationRepository,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
	pushSender push.Sender,
	clk clock.Clock,
) notification.NotificationService {
	return &NotificationServiceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
		hub:          hub,
		push:         pushSender,
		clock:        clk,
	}
}

func (s *NotificationServiceImpl) fill(n notification.Notification) notification.Notification {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Status == "" {
		n.Status = notification.StatusPending
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.clock.Now()
	}
	return n
}

// Notify implements notification.NotificationService. The row is the source
// of truth; SSE and push delivery are best-effort extras.
func (s *NotificationServiceImpl) Notify(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	n = s.fill(n)

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return notification.Notification{}, err
	}

	s.deliver(ctx, created)
	return created, nil
}

// NotifyMany implements notification.NotificationService.
func (s *NotificationServiceImpl) NotifyMany(ctx context.Context, ns []notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	for i := range ns {
		ns[i] = s.fill(ns[i])
	}

	if err := s.repo.CreateBatch(ctx, ns); err != nil {
		return err
	}

	for _, n := range ns {
		s.deliver(ctx, n)
	}

	return nil
}

func (s *NotificationServiceImpl) deliver(ctx context.Context, n notification.Notification) {
	s.hub.Publish(n.RecipientID, sse.Event{
		RecipientID: n.RecipientID,
		Event:       "notification",
		Data:        notification.ToResponse(n),
	})

	// Admin has no device token; everyone else gets a push if registered.
	if n.RecipientID == "" || s.push == nil {
		return
	}

	emp, err := s.employeeRepo.GetByID(ctx, n.RecipientID)
	if err != nil || emp.PushToken == nil || *emp.PushToken == "" {
		return
	}

	if err := s.push.Send(ctx, push.Message{
		Token:     *emp.PushToken,
		Title:     n.Title,
		Body:      n.Body,
		ChannelID: "default",
		Data:      n.Data,
	}); err != nil {
		slog.Warn("push delivery failed", "notification_id", n.ID, "recipient_id", n.RecipientID, "error", err)
	}
}

// ListForRecipient implements notification.NotificationService.
func (s *NotificationServiceImpl) ListForRecipient(ctx context.Context, recipientID string) ([]notification.NotificationResponse, error) {
	notifications, err := s.repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		// An employee never sees the request copy of their own leave, only
		// the approved/rejected outcome addressed to them.
		if n.Type == notification.TypeLeaveRequest && isOwnLeave(n, recipientID) {
			continue
		}
		responses = append(responses, notification.ToResponse(n))
	}

	return responses, nil
}

func isOwnLeave(n notification.Notification, recipientID string) bool {
	if n.Data == nil {
		return false
	}
	employeeID, _ := n.Data["employee_id"].(string)
	return employeeID == recipientID
}

// UnreadCount implements notification.NotificationService.
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// GetByID implements notification.NotificationService.
func (s *NotificationServiceImpl) GetByID(ctx context.Context, recipientID, id string) (notification.NotificationResponse, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notification.NotificationResponse{}, err
	}
	if n.RecipientID != recipientID {
		return notification.NotificationResponse{}, notification.ErrNotificationNotOwned
	}
	return notification.ToResponse(n), nil
}

// MarkRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, recipientID, id string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != recipientID {
		return notification.ErrNotificationNotOwned
	}
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

// Delete implements notification.NotificationService.
func (s *NotificationServiceImpl) Delete(ctx context.Context, recipientID, id string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != recipientID {
		return notification.ErrNotificationNotOwned
	}
	return s.repo.Delete(ctx, id)
}
