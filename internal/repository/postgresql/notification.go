package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

const notificationColumns = `
	id, recipient_id, type, title, body, leave_id, data,
	status, action_by, action_at, read, created_at
`

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	var leaveID, actionBy *string
	var dataJSON []byte

	err := row.Scan(
		&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Body, &leaveID, &dataJSON,
		&n.Status, &actionBy, &n.ActionAt, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, err
	}

	if leaveID != nil {
		n.LeaveID = *leaveID
	}
	if actionBy != nil {
		n.ActionBy = *actionBy
	}
	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
			return notification.Notification{}, fmt.Errorf("failed to unmarshal notification data: %w", err)
		}
	}

	return n, nil
}

// Create implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	dataJSON, err := json.Marshal(n.Data)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (
			id, recipient_id, type, title, body, leave_id, data,
			status, action_by, read, created_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NULLIF($9, ''), $10, $11)
	`

	_, err = q.Exec(ctx, query,
		n.ID, n.RecipientID, n.Type, n.Title, n.Body, n.LeaveID, dataJSON,
		n.Status, n.ActionBy, n.Read, n.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// CreateBatch implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(ns))
	valueArgs := make([]interface{}, 0, len(ns)*11)

	for i, n := range ns {
		dataJSON, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}

		base := i * 11
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, NULLIF($%d, ''), $%d, $%d, NULLIF($%d, ''), $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11,
		))
		valueArgs = append(valueArgs,
			n.ID, n.RecipientID, n.Type, n.Title, n.Body, n.LeaveID, dataJSON,
			n.Status, n.ActionBy, n.Read, n.CreatedAt,
		)
	}

	query := `
		INSERT INTO notifications (
			id, recipient_id, type, title, body, leave_id, data,
			status, action_by, read, created_at
		) VALUES ` + strings.Join(valueStrings, ", ")

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to create notifications batch: %w", err)
	}

	return nil
}

// GetByID implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// ListByRecipient implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE recipient_id = $1`, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}

// CountUnread implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, recipientID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE recipient_id = $1
		  AND read = FALSE
		  AND NOT (type = 'leave_request' AND data->>'employee_id' = $1)
	`

	var count int
	if err := q.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkActionedByLeave implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkActionedByLeave(ctx context.Context, leaveID string, status notification.ActionStatus, actionBy string, actionAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET status = $1, action_by = $2, action_at = $3
		WHERE leave_id = $4 AND type = $5
	`

	_, err := q.Exec(ctx, query, status, actionBy, actionAt, leaveID, notification.TypeLeaveRequest)
	if err != nil {
		return fmt.Errorf("failed to reconcile leave notifications: %w", err)
	}

	return nil
}

// Delete implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}
