package notification

import "time"

type NotificationType string

const (
	TypeLeaveRequest  NotificationType = "leave_request"
	TypeLeaveApproved NotificationType = "leave_approved"
	TypeLeaveRejected NotificationType = "leave_rejected"
	TypeLocationOff   NotificationType = "location_off"
	TypeSalarySlip    NotificationType = "salary_slip"
)

type ActionStatus string

const (
	StatusPending  ActionStatus = "pending"
	StatusApproved ActionStatus = "approved"
	StatusRejected ActionStatus = "rejected"
)

// Notification is one recipient's copy of an event. A leave application
// produces one row per selected manager plus one for the admin recipient,
// all sharing the same LeaveID.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType

	Title string
	Body  string

	// LeaveID links sibling copies of the same leave application so an
	// action on one copy can be reflected on the others.
	LeaveID string

	Data map[string]interface{}

	Status   ActionStatus
	ActionBy string
	ActionAt *time.Time

	Read      bool
	CreatedAt time.Time
}
