package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalarySlip is one month's payslip for an employee. The PDF lives in file
// storage under FilePath; amounts are exact decimals.
type SalarySlip struct {
	ID         string
	EmployeeID string
	Month      int // 1..12
	Year       int

	GrossPay   decimal.Decimal
	Deductions decimal.Decimal
	NetPay     decimal.Decimal

	FilePath string
	FileName string

	UploadedBy string
	CreatedAt  time.Time
}

// Period returns the slip period as YYYY-MM.
func (s SalarySlip) Period() string {
	return time.Date(s.Year, time.Month(s.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
