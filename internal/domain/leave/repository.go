package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)

	// MarkApproved and MarkRejected perform the guarded terminal transition:
	// the update only applies while status is Pending, otherwise
	// ErrLeaveRequestAlreadyProcessed is returned. This closes the
	// double-approval race.
	MarkApproved(ctx context.Context, id string, approvedBy, approvedRole string) error
	MarkRejected(ctx context.Context, id string, rejectedBy, rejectedRole, reason string) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// GetOrInit returns the employee's ledger, creating it with policy
	// defaults on first read.
	GetOrInit(ctx context.Context, employeeID string) (LeaveBalance, error)

	// Deduct atomically adds days to used and recomputes balance in one
	// statement, so balance = total - used can never be observed broken.
	Deduct(ctx context.Context, employeeID string, bucket BalanceBucket, days int) error

	// Set is the admin direct edit; balance is recomputed from total and used.
	Set(ctx context.Context, employeeID string, bucket BalanceBucket, total, used int) error
}
