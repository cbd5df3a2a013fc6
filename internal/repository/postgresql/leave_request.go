package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/leave"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, employee_name, employee_code, leave_type,
	from_date, to_date, days, reason, managers, status, applied_at,
	approved_by, approved_role, approved_at,
	rejected_by, rejected_role, rejected_at, rejection_reason
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var managersJSON []byte

	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.EmployeeName, &req.EmployeeCode,
		&req.LeaveType, &req.FromDate, &req.ToDate, &req.Days, &req.Reason,
		&managersJSON, &req.Status, &req.AppliedAt,
		&req.ApprovedBy, &req.ApprovedRole, &req.ApprovedAt,
		&req.RejectedBy, &req.RejectedRole, &req.RejectedAt, &req.RejectionReason,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if len(managersJSON) > 0 {
		if err := json.Unmarshal(managersJSON, &req.Managers); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to unmarshal managers: %w", err)
		}
	}

	return req, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	managersJSON, err := json.Marshal(request.Managers)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to marshal managers: %w", err)
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, employee_name, employee_code, leave_type,
			from_date, to_date, days, reason, managers, status, applied_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = q.Exec(ctx, query,
		request.ID, request.EmployeeID, request.EmployeeName, request.EmployeeCode,
		request.LeaveType, request.FromDate, request.ToDate, request.Days,
		request.Reason, managersJSON, request.Status, request.AppliedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE employee_id = $1 ORDER BY applied_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests ORDER BY applied_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// MarkApproved implements leave.LeaveRequestRepository. The status guard in
// the WHERE clause makes the transition race-free: a second approver, or an
// approve racing a reject, matches zero rows.
func (r *leaveRequestRepositoryImpl) MarkApproved(ctx context.Context, id string, approvedBy, approvedRole string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_role = $3, approved_at = NOW()
		WHERE id = $4 AND status = $5
	`

	tag, err := q.Exec(ctx, query, leave.StatusApproved, approvedBy, approvedRole, id, leave.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to approve leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return nil
}

// MarkRejected implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) MarkRejected(ctx context.Context, id string, rejectedBy, rejectedRole, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, rejected_by = $2, rejected_role = $3, rejected_at = NOW(), rejection_reason = $4
		WHERE id = $5 AND status = $6
	`

	tag, err := q.Exec(ctx, query, leave.StatusRejected, rejectedBy, rejectedRole, reason, id, leave.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to reject leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return nil
}
