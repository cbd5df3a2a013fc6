package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("holiday already exists on this date")
	ErrInvalidType     = errors.New("invalid holiday type")
)
