package payslip

import (
	"context"
	"io"
)

// SalarySlipService - interface for payslip upload and download
type SalarySlipService interface {
	Upload(ctx context.Context, uploadedBy string, req UploadSalarySlipRequest, pdf io.Reader) (SalarySlipResponse, error)
	GetByID(ctx context.Context, id string) (SalarySlipResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalarySlipResponse, error)
	ListAll(ctx context.Context) ([]SalarySlipResponse, error)

	// Download streams the stored PDF; callers close the reader.
	Download(ctx context.Context, id string) (io.ReadCloser, SalarySlipResponse, error)

	Delete(ctx context.Context, id string) error
}
