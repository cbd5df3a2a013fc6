package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrMobileExists       = errors.New("mobile number already exists")
	ErrInvalidMobile      = errors.New("mobile number must be 10 digits")
	ErrInvalidCode        = errors.New("invalid employee code format")
	ErrEmployeeInactive   = errors.New("employee is inactive")
)
