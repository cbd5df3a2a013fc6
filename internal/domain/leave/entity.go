package leave

import "time"

type LeaveType string

const (
	TypeEarnedLeave     LeaveType = "Earned Leave"
	TypeCasualLeave     LeaveType = "Casual Leave"
	TypeSickLeave       LeaveType = "Sick Leave"
	TypeCompensatoryOff LeaveType = "Compensatory Off"
)

func IsValidLeaveType(t LeaveType) bool {
	switch t {
	case TypeEarnedLeave, TypeCasualLeave, TypeSickLeave, TypeCompensatoryOff:
		return true
	}
	return false
}

// BalanceBucket names the three ledger buckets. Casual and sick leave share
// one bucket by policy.
type BalanceBucket string

const (
	BucketCasualSick BalanceBucket = "casual_sick"
	BucketEarned     BalanceBucket = "earned_leave"
	BucketCompOff    BalanceBucket = "comp_off"
)

// BucketForType maps a leave type to the ledger bucket it deducts from.
func BucketForType(t LeaveType) BalanceBucket {
	switch t {
	case TypeCasualLeave, TypeSickLeave:
		return BucketCasualSick
	case TypeCompensatoryOff:
		return BucketCompOff
	default:
		return BucketEarned
	}
}

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "Pending"
	StatusApproved LeaveStatus = "Approved"
	StatusRejected LeaveStatus = "Rejected"
)

// Approver is a manager selected by the employee at submission time.
type Approver struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LeaveRequest transitions exactly once: Pending to Approved or Rejected,
// both terminal.
type LeaveRequest struct {
	ID         string
	EmployeeID string

	// Snapshots taken at submission
	EmployeeName string
	EmployeeCode string

	LeaveType LeaveType
	FromDate  time.Time
	ToDate    time.Time
	Days      int
	Reason    string
	Managers  []Approver

	Status    LeaveStatus
	AppliedAt time.Time

	ApprovedBy   *string
	ApprovedRole *string
	ApprovedAt   *time.Time

	RejectedBy      *string
	RejectedRole    *string
	RejectedAt      *time.Time
	RejectionReason *string
}

// HasManager reports whether the given employee was selected as an approver.
func (r LeaveRequest) HasManager(id string) bool {
	for _, m := range r.Managers {
		if m.ID == id {
			return true
		}
	}
	return false
}

// BucketBalance holds one ledger bucket. The balance = total - used invariant
// is maintained by every mutation in the same statement.
type BucketBalance struct {
	Total   int `json:"total"`
	Used    int `json:"used"`
	Balance int `json:"balance"`
}

type LeaveBalance struct {
	EmployeeID      string        `json:"employee_id"`
	CasualSick      BucketBalance `json:"casual_sick"`
	EarnedLeave     BucketBalance `json:"earned_leave"`
	CompensatoryOff BucketBalance `json:"compensatory_off"`
}

// Policy defaults applied on first read of an employee's balance.
const (
	DefaultCasualSickTotal = 12
	DefaultEarnedTotal     = 18
	DefaultCompOffTotal    = 0
)

// DefaultBalance returns the lazily-initialized ledger for a new employee.
func DefaultBalance(employeeID string) LeaveBalance {
	return LeaveBalance{
		EmployeeID:      employeeID,
		CasualSick:      BucketBalance{Total: DefaultCasualSickTotal, Balance: DefaultCasualSickTotal},
		EarnedLeave:     BucketBalance{Total: DefaultEarnedTotal, Balance: DefaultEarnedTotal},
		CompensatoryOff: BucketBalance{Total: DefaultCompOffTotal, Balance: DefaultCompOffTotal},
	}
}

// Bucket returns the named bucket of a balance.
func (b LeaveBalance) Bucket(name BalanceBucket) BucketBalance {
	switch name {
	case BucketCasualSick:
		return b.CasualSick
	case BucketCompOff:
		return b.CompensatoryOff
	default:
		return b.EarnedLeave
	}
}
