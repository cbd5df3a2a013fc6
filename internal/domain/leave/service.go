package leave

import (
	"context"
)

// Actor identifies who performed an approval or rejection.
type Actor struct {
	ID   string
	Name string
	Role string
}

// LeaveService - interface for the leave workflow
type LeaveService interface {
	// Apply creates a pending request and fans out one notification per
	// selected manager plus one to the admin recipient.
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error)

	// Approve transitions the request to Approved, deducts the day count
	// from the matching balance bucket, notifies the requester, and marks
	// the sibling notifications actioned. Request transition and balance
	// deduction run inside one transaction.
	Approve(ctx context.Context, leaveID string, actor Actor, req ApproveLeaveRequest) error

	// Reject transitions the request to Rejected without touching the
	// balance, notifies the requester, and marks siblings actioned.
	Reject(ctx context.Context, leaveID string, actor Actor, req RejectLeaveRequest) error

	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListAll(ctx context.Context) ([]LeaveRequestResponse, error)

	GetBalance(ctx context.Context, employeeID string) (LeaveBalance, error)
	UpdateBalance(ctx context.Context, employeeID string, req UpdateBalanceRequest) (LeaveBalance, error)
}
