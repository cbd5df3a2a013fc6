package employee

import (
	"time"
)

type Employee struct {
	ID           string
	Name         string
	Code         string // unique, e.g. "OIDPL042"
	Mobile       string // unique, the employee login key
	PasswordHash string
	Designation  string
	Department   string
	Active       bool
	ProfileImage *string
	PushToken    *string

	// SharingEnabled is the location-sharing switch; only mutable during
	// office hours (see tracking service).
	SharingEnabled bool
	Location       *CurrentLocation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentLocation is the employee's latest known position. It is overwritten
// on every accepted sample and always matches the newest history row's
// timestamp.
type CurrentLocation struct {
	Latitude  float64
	Longitude float64
	Address   string
	Timestamp time.Time
}
