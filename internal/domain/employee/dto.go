package employee

import "time"

type CreateEmployeeRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Mobile      string `json:"mobile"`
	Password    string `json:"password"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Department  *string `json:"department,omitempty"`
	Mobile      *string `json:"mobile,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Mobile *string `json:"mobile,omitempty"`
}

type CurrentLocationResponse struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}

type EmployeeResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Code            string                   `json:"code"`
	Mobile          string                   `json:"mobile"`
	Designation     string                   `json:"designation"`
	Department      string                   `json:"department"`
	Active          bool                     `json:"active"`
	ProfileImageURL *string                  `json:"profile_image_url,omitempty"`
	SharingEnabled  bool                     `json:"sharing_enabled"`
	Location        *CurrentLocationResponse `json:"location,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

// ImportRow is one record of a CSV batch import.
type ImportRow struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Mobile      string `json:"mobile"`
	Password    string `json:"password"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

// ImportResult reports per-row outcomes of a batch import; failed rows do not
// abort the rest of the batch.
type ImportResult struct {
	SuccessCount int      `json:"success_count"`
	FailCount    int      `json:"fail_count"`
	Errors       []string `json:"errors,omitempty"`
}
