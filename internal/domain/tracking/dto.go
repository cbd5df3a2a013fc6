package tracking

import "time"

// ReportLocationRequest is one sample from the device. Nil coordinates mean
// the device could not provide a fix (permission denied); the service falls
// back to the demo position instead of failing.
type ReportLocationRequest struct {
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`
}

type LocationResponse struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}

type StatusResponse struct {
	GateState      GateState         `json:"gate_state"`
	SharingEnabled bool              `json:"sharing_enabled"`
	Location       *LocationResponse `json:"location,omitempty"`
}

// DayReportRow is one history sample within a single calendar day.
type DayReportRow struct {
	Time      time.Time `json:"time"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Address   string    `json:"address"`
}

// DayReport is the per-employee, per-day movement report the admin exports.
type DayReport struct {
	EmployeeID      string         `json:"employee_id"`
	EmployeeName    string         `json:"employee_name"`
	EmployeeCode    string         `json:"employee_code"`
	EmployeeMobile  string         `json:"employee_mobile"`
	Date            string         `json:"date"` // YYYY-MM-DD
	Rows            []DayReportRow `json:"rows"`
	DistanceMeters  float64        `json:"distance_meters"`
	SampleCount     int            `json:"sample_count"`
	FirstSeenAt     *time.Time     `json:"first_seen_at,omitempty"`
	LastSeenAt      *time.Time     `json:"last_seen_at,omitempty"`
}
