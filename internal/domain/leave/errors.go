package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidLeaveType             = errors.New("invalid leave type")
	ErrInvalidDateRange             = errors.New("to date must not be before from date")
	ErrNoManagersSelected           = errors.New("at least one manager must be selected")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrNotAnApprover                = errors.New("only a selected manager or the admin may act on this leave request")
)
