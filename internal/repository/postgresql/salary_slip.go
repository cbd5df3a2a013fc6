package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/payslip"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
)

type salarySlipRepositoryImpl struct {
	db *database.DB
}

func NewSalarySlipRepository(db *database.DB) payslip.SalarySlipRepository {
	return &salarySlipRepositoryImpl{db: db}
}

const salarySlipColumns = `
	id, employee_id, month, year, gross_pay, deductions, net_pay,
	file_path, file_name, uploaded_by, created_at
`

func scanSalarySlip(row pgx.Row) (payslip.SalarySlip, error) {
	var s payslip.SalarySlip
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.Year,
		&s.GrossPay, &s.Deductions, &s.NetPay,
		&s.FilePath, &s.FileName, &s.UploadedBy, &s.CreatedAt,
	)
	if err != nil {
		return payslip.SalarySlip{}, err
	}
	return s, nil
}

// Create implements payslip.SalarySlipRepository.
func (r *salarySlipRepositoryImpl) Create(ctx context.Context, slip payslip.SalarySlip) (payslip.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_slips (
			id, employee_id, month, year, gross_pay, deductions, net_pay,
			file_path, file_name, uploaded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		slip.ID, slip.EmployeeID, slip.Month, slip.Year,
		slip.GrossPay, slip.Deductions, slip.NetPay,
		slip.FilePath, slip.FileName, slip.UploadedBy,
	).Scan(&slip.CreatedAt)
	if err != nil {
		return payslip.SalarySlip{}, fmt.Errorf("failed to create salary slip: %w", err)
	}

	return slip, nil
}

// GetByID implements payslip.SalarySlipRepository.
func (r *salarySlipRepositoryImpl) GetByID(ctx context.Context, id string) (payslip.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salarySlipColumns + ` FROM salary_slips WHERE id = $1`

	slip, err := scanSalarySlip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.SalarySlip{}, payslip.ErrSalarySlipNotFound
		}
		return payslip.SalarySlip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}

	return slip, nil
}

// ExistsForPeriod implements payslip.SalarySlipRepository.
func (r *salarySlipRepositoryImpl) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM salary_slips WHERE employee_id = $1 AND month = $2 AND year = $3)`,
		employeeID, month, year,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check salary slip period: %w", err)
	}

	return exists, nil
}

// ListByEmployee implements payslip.SalarySlipRepository.
func (r *salarySlipRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payslip.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salarySlipColumns + ` FROM salary_slips WHERE employee_id = $1 ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}
	defer rows.Close()

	var slips []payslip.SalarySlip
	for rows.Next() {
		slip, err := scanSalarySlip(rows)
		if err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return slips, nil
}

// ListAll implements payslip.SalarySlipRepository.
func (r *salarySlipRepositoryImpl) ListAll(ctx context.Context) ([]payslip.SalarySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salarySlipColumns + ` FROM salary_slips ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}
	defer rows.Close()

	var slips []payslip.SalarySlip
	for rows.Next() {
		slip, err := scanSalarySlip(rows)
		if err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return slips, nil
}

// Delete implements payslip.SalarySlipRepository.
func (r *salarySlipRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_slips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary slip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrSalarySlipNotFound
	}

	return nil
}
