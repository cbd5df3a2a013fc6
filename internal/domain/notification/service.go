package notification

import (
	"context"
)

// NotificationService - interface for notification delivery and listing
type NotificationService interface {
	// Notify persists a notification, pushes it over the recipient's SSE
	// stream, and attempts an Expo push when the recipient has a device
	// token. Push failures are logged, never returned.
	Notify(ctx context.Context, n Notification) (Notification, error)

	// NotifyMany fans a set of copies out in one batch.
	NotifyMany(ctx context.Context, ns []Notification) error

	// ListForRecipient returns the recipient's feed. Leave request copies
	// are never returned to the employee who applied; those only surface
	// as approved/rejected outcomes.
	ListForRecipient(ctx context.Context, recipientID string) ([]NotificationResponse, error)

	// UnreadCount backs the badge on the mobile home screen.
	UnreadCount(ctx context.Context, recipientID string) (int, error)

	GetByID(ctx context.Context, recipientID, id string) (NotificationResponse, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, recipientID, id string) error
}
