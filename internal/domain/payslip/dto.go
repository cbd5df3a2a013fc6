package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

type UploadSalarySlipRequest struct {
	EmployeeID string          `json:"employee_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	GrossPay   decimal.Decimal `json:"gross_pay"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"net_pay"`
	FileName   string          `json:"file_name"`
}

type SalarySlipResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Period     string          `json:"period"`
	GrossPay   decimal.Decimal `json:"gross_pay"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"net_pay"`
	FileName   string          `json:"file_name"`
	CreatedAt  time.Time       `json:"created_at"`
}

func ToResponse(s SalarySlip) SalarySlipResponse {
	return SalarySlipResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Month:      s.Month,
		Year:       s.Year,
		Period:     s.Period(),
		GrossPay:   s.GrossPay,
		Deductions: s.Deductions,
		NetPay:     s.NetPay,
		FileName:   s.FileName,
		CreatedAt:  s.CreatedAt,
	}
}
