package tracking

import "errors"

var (
	ErrOutsideOfficeHours = errors.New("location sharing is only available during office hours (10:30 AM - 6:30 PM)")
	ErrSharingDisabled    = errors.New("location sharing is disabled")
)
