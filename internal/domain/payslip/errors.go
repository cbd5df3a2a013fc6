package payslip

import "errors"

var (
	ErrSalarySlipNotFound = errors.New("salary slip not found")
	ErrSalarySlipExists   = errors.New("salary slip already exists for this period")
	ErrInvalidPeriod      = errors.New("invalid payslip period")
	ErrInvalidAmounts     = errors.New("net pay must equal gross pay minus deductions")
)
