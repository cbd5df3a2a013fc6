package leave

import "time"

type ApplyLeaveRequest struct {
	LeaveType LeaveType  `json:"leave_type"`
	FromDate  string     `json:"from_date"` // YYYY-MM-DD
	ToDate    string     `json:"to_date"`   // YYYY-MM-DD
	Reason    string     `json:"reason"`
	Managers  []Approver `json:"managers"`
}

type ApproveLeaveRequest struct {
	// NotificationID is the manager/admin notification copy the action came
	// through; it gets marked actioned and its siblings reconciled.
	NotificationID string `json:"notification_id"`
}

type RejectLeaveRequest struct {
	NotificationID string `json:"notification_id"`
	Reason         string `json:"reason"`
}

type UpdateBalanceRequest struct {
	Bucket BalanceBucket `json:"bucket"`
	Total  int           `json:"total"`
	Used   int           `json:"used"`
}

type LeaveRequestResponse struct {
	ID              string      `json:"id"`
	EmployeeID      string      `json:"employee_id"`
	EmployeeName    string      `json:"employee_name"`
	EmployeeCode    string      `json:"employee_code"`
	LeaveType       LeaveType   `json:"leave_type"`
	FromDate        time.Time   `json:"from_date"`
	ToDate          time.Time   `json:"to_date"`
	Days            int         `json:"days"`
	Reason          string      `json:"reason"`
	Managers        []Approver  `json:"managers"`
	Status          LeaveStatus `json:"status"`
	AppliedAt       time.Time   `json:"applied_at"`
	ApprovedBy      *string     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time  `json:"approved_at,omitempty"`
	RejectedBy      *string     `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time  `json:"rejected_at,omitempty"`
	RejectionReason *string     `json:"rejection_reason,omitempty"`
}
