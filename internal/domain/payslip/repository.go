package payslip

import "context"

// SalarySlipRepository - interface for salary_slips table
type SalarySlipRepository interface {
	Create(ctx context.Context, slip SalarySlip) (SalarySlip, error)
	GetByID(ctx context.Context, id string) (SalarySlip, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalarySlip, error)
	ListAll(ctx context.Context) ([]SalarySlip, error)
	Delete(ctx context.Context, id string) error
}
