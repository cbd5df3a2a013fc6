package notification

import (
	"context"
	"time"
)

// NotificationRepository - interface for notifications table
type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	CreateBatch(ctx context.Context, ns []Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error

	// CountUnread counts unread rows the recipient would actually see; a
	// requester's own leave_request copies are excluded to match the feed.
	CountUnread(ctx context.Context, recipientID string) (int, error)

	// MarkActionedByLeave stamps the action result on every notification
	// copy that shares the leave id, so each manager's copy shows the
	// final outcome regardless of who acted.
	MarkActionedByLeave(ctx context.Context, leaveID string, status ActionStatus, actionBy string, actionAt time.Time) error

	Delete(ctx context.Context, id string) error
}
