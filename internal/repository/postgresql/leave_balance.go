package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/leave"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetOrInit implements leave.LeaveBalanceRepository. The ledger is created
// lazily with policy defaults on first read; ON CONFLICT keeps the insert
// safe under concurrent first reads.
func (r *leaveBalanceRepositoryImpl) GetOrInit(ctx context.Context, employeeID string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	def := leave.DefaultBalance(employeeID)

	insert := `
		INSERT INTO leave_balances (
			employee_id,
			casual_sick_total, casual_sick_used, casual_sick_balance,
			earned_total, earned_used, earned_balance,
			comp_off_total, comp_off_used, comp_off_balance
		) VALUES ($1, $2, 0, $2, $3, 0, $3, $4, 0, $4)
		ON CONFLICT (employee_id) DO NOTHING
	`

	_, err := q.Exec(ctx, insert, employeeID,
		def.CasualSick.Total, def.EarnedLeave.Total, def.CompensatoryOff.Total)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to init leave balance: %w", err)
	}

	query := `
		SELECT employee_id,
			casual_sick_total, casual_sick_used, casual_sick_balance,
			earned_total, earned_used, earned_balance,
			comp_off_total, comp_off_used, comp_off_balance
		FROM leave_balances
		WHERE employee_id = $1
	`

	var b leave.LeaveBalance
	err = q.QueryRow(ctx, query, employeeID).Scan(
		&b.EmployeeID,
		&b.CasualSick.Total, &b.CasualSick.Used, &b.CasualSick.Balance,
		&b.EarnedLeave.Total, &b.EarnedLeave.Used, &b.EarnedLeave.Balance,
		&b.CompensatoryOff.Total, &b.CompensatoryOff.Used, &b.CompensatoryOff.Balance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return def, nil
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// Deduct implements leave.LeaveBalanceRepository. Used and balance move in
// one statement; the balance guard rejects overdraw at the database even if
// the service check raced.
func (r *leaveBalanceRepositoryImpl) Deduct(ctx context.Context, employeeID string, bucket leave.BalanceBucket, days int) error {
	q := GetQuerier(ctx, r.db)

	prefix, err := bucketColumnPrefix(bucket)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE leave_balances
		SET %[1]s_used = %[1]s_used + $1,
			%[1]s_balance = %[1]s_total - (%[1]s_used + $1)
		WHERE employee_id = $2 AND %[1]s_balance >= $1
	`, prefix)

	tag, err := q.Exec(ctx, query, days, employeeID)
	if err != nil {
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// Set implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Set(ctx context.Context, employeeID string, bucket leave.BalanceBucket, total, used int) error {
	q := GetQuerier(ctx, r.db)

	prefix, err := bucketColumnPrefix(bucket)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE leave_balances
		SET %[1]s_total = $1, %[1]s_used = $2, %[1]s_balance = $1 - $2
		WHERE employee_id = $3
	`, prefix)

	tag, err := q.Exec(ctx, query, total, used, employeeID)
	if err != nil {
		return fmt.Errorf("failed to set leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("leave balance not found for employee %s", employeeID)
	}

	return nil
}

func bucketColumnPrefix(bucket leave.BalanceBucket) (string, error) {
	switch bucket {
	case leave.BucketCasualSick:
		return "casual_sick", nil
	case leave.BucketEarned:
		return "earned", nil
	case leave.BucketCompOff:
		return "comp_off", nil
	default:
		return "", fmt.Errorf("unknown balance bucket: %s", bucket)
	}
}
