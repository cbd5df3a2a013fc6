package notification

import "time"

type NotificationResponse struct {
	ID          string                 `json:"id"`
	RecipientID string                 `json:"recipient_id"`
	Type        NotificationType       `json:"type"`
	Title       string                 `json:"title"`
	Body        string                 `json:"body"`
	LeaveID     string                 `json:"leave_id,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
	Status      ActionStatus           `json:"status"`
	ActionBy    string                 `json:"action_by,omitempty"`
	ActionAt    *time.Time             `json:"action_at,omitempty"`
	Read        bool                   `json:"read"`
	CreatedAt   time.Time              `json:"created_at"`
}

func ToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Type:        n.Type,
		Title:       n.Title,
		Body:        n.Body,
		LeaveID:     n.LeaveID,
		Data:        n.Data,
		Status:      n.Status,
		ActionBy:    n.ActionBy,
		ActionAt:    n.ActionAt,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
