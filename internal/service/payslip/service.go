package payslip

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/domain/payslip"
	"github.com/oidpl/workforce-backend-go/internal/pkg/storage"
)

type SalarySlipServiceImpl struct {
	repo         payslip.SalarySlipRepository
	employeeRepo employee.EmployeeRepository
	storage      storage.FileStorage
	notifier     notification.NotificationService
}

func NewSalarySlipService(
	repo payslip.SalarySlipRepository,
	employeeRepo employee.EmployeeRepository,
	fileStorage storage.FileStorage,
	notifier notification.NotificationService,
) payslip.SalarySlipService {
	return &SalarySlipServiceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
		storage:      fileStorage,
		notifier:     notifier,
	}
}

// Upload implements payslip.SalarySlipService.
func (s *SalarySlipServiceImpl) Upload(ctx context.Context, uploadedBy string, req payslip.UploadSalarySlipRequest, pdf io.Reader) (payslip.SalarySlipResponse, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return payslip.SalarySlipResponse{}, payslip.ErrInvalidPeriod
	}
	if !req.GrossPay.Sub(req.Deductions).Equal(req.NetPay) {
		return payslip.SalarySlipResponse{}, payslip.ErrInvalidAmounts
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payslip.SalarySlipResponse{}, err
	}

	exists, err := s.repo.ExistsForPeriod(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return payslip.SalarySlipResponse{}, err
	}
	if exists {
		return payslip.SalarySlipResponse{}, payslip.ErrSalarySlipExists
	}

	slip := payslip.SalarySlip{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		GrossPay:   req.GrossPay,
		Deductions: req.Deductions,
		NetPay:     req.NetPay,
		FileName:   req.FileName,
		UploadedBy: uploadedBy,
	}

	path := fmt.Sprintf("payslips/%s/%04d-%02d.pdf", req.EmployeeID, req.Year, req.Month)
	stored, err := s.storage.Upload(ctx, pdf, path, "application/pdf")
	if err != nil {
		return payslip.SalarySlipResponse{}, fmt.Errorf("failed to store payslip pdf: %w", err)
	}
	slip.FilePath = stored

	created, err := s.repo.Create(ctx, slip)
	if err != nil {
		if delErr := s.storage.Delete(ctx, stored); delErr != nil {
			slog.Warn("failed to remove orphaned payslip file", "path", stored, "error", delErr)
		}
		return payslip.SalarySlipResponse{}, err
	}

	if _, err := s.notifier.Notify(ctx, notification.Notification{
		RecipientID: emp.ID,
		Type:        notification.TypeSalarySlip,
		Title:       "Salary slip available",
		Body:        fmt.Sprintf("Your salary slip for %s is ready", created.Period()),
		Data:        map[string]interface{}{"salary_slip_id": created.ID, "period": created.Period()},
	}); err != nil {
		slog.Warn("failed to notify employee of payslip", "salary_slip_id", created.ID, "error", err)
	}

	return payslip.ToResponse(created), nil
}

// GetByID implements payslip.SalarySlipService.
func (s *SalarySlipServiceImpl) GetByID(ctx context.Context, id string) (payslip.SalarySlipResponse, error) {
	slip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return payslip.SalarySlipResponse{}, err
	}
	return payslip.ToResponse(slip), nil
}

// ListByEmployee implements payslip.SalarySlipService.
func (s *SalarySlipServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payslip.SalarySlipResponse, error) {
	slips, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.SalarySlipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, payslip.ToResponse(slip))
	}

	return responses, nil
}

// ListAll implements payslip.SalarySlipService.
func (s *SalarySlipServiceImpl) ListAll(ctx context.Context) ([]payslip.SalarySlipResponse, error) {
	slips, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.SalarySlipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, payslip.ToResponse(slip))
	}

	return responses, nil
}

// Download implements payslip.SalarySlipService.
func (s *SalarySlipServiceImpl) Download(ctx context.Context, id string) (io.ReadCloser, payslip.SalarySlipResponse, error) {
	slip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, payslip.SalarySlipResponse{}, err
	}

	rc, err := s.storage.Download(ctx, slip.FilePath)
	if err != nil {
		return nil, payslip.SalarySlipResponse{}, fmt.Errorf("failed to open payslip pdf: %w", err)
	}

	return rc, payslip.ToResponse(slip), nil
}

// Delete implements payslip.SalarySlipService.
func (s *SalarySlipServiceImpl) Delete(ctx context.Context, id string) error {
	slip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, slip.FilePath); err != nil {
		slog.Warn("failed to delete payslip file", "path", slip.FilePath, "error", err)
	}

	return nil
}
