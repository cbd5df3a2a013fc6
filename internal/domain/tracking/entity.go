package tracking

import "time"

// GateState is the office-hours gate position. Location sharing can only be
// active while the gate is Inside.
type GateState string

const (
	GateInside  GateState = "inside"
	GateOutside GateState = "outside"
)

// Office hours are 10:30–18:30, inclusive on both boundaries, expressed as
// minutes since midnight local time.
const (
	OfficeOpenMinute  = 10*60 + 30 // 630
	OfficeCloseMinute = 18*60 + 30 // 1110
)

// WithinOfficeHours reports whether t falls inside the office-hours window.
func WithinOfficeHours(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	return minute >= OfficeOpenMinute && minute <= OfficeCloseMinute
}

// GateStateAt maps a wall-clock instant to a gate state.
func GateStateAt(t time.Time) GateState {
	if WithinOfficeHours(t) {
		return GateInside
	}
	return GateOutside
}

// Demo fallback position used when a device cannot provide coordinates
// (permission denied or acquisition failure). Reporting must never fail for
// lack of a fix.
const (
	DemoLatitude  = 28.4595
	DemoLongitude = 77.0266
	DemoAddress   = "OIDPL Office, Sector 51, Gurugram, Haryana (Demo Location)"
)

// RetentionPeriod is how long location history rows are kept before the sweep
// deletes them.
const RetentionPeriod = 10 * 24 * time.Hour

// HistoryRecord is one appended location sample. Employee identity fields are
// snapshotted so day reports survive later employee edits.
type HistoryRecord struct {
	ID         string
	EmployeeID string
	Latitude   float64
	Longitude  float64
	Address    string
	Timestamp  time.Time

	EmployeeName   string
	EmployeeCode   string
	EmployeeMobile string
}
