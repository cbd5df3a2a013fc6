package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/domain/leave"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/pkg/clock"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
	"github.com/oidpl/workforce-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	requestRepo  leave.LeaveRequestRepository
	balanceRepo  leave.LeaveBalanceRepository
	employeeRepo employee.EmployeeRepository
	notifRepo    notification.NotificationRepository
	notifier     notification.NotificationService
	tx           database.TxManager
	clock        clock.Clock
}

func NewLeaveService(
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	notifRepo notification.NotificationRepository,
	notifier notification.NotificationService,
	tx database.TxManager,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		requestRepo:  requestRepo,
		balanceRepo:  balanceRepo,
		employeeRepo: employeeRepo,
		notifRepo:    notifRepo,
		notifier:     notifier,
		tx:           tx,
		clock:        clk,
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if !leave.IsValidLeaveType(req.LeaveType) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidLeaveType
	}
	if len(req.Managers) == 0 {
		return leave.LeaveRequestResponse{}, leave.ErrNoManagersSelected
	}

	from, ok := validator.IsValidDate(req.FromDate)
	if !ok {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}
	to, ok := validator.IsValidDate(req.ToDate)
	if !ok {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}
	if to.Before(from) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	days := int(to.Sub(from).Hours()/24) + 1

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Advisory check at submission; the authoritative guard is the atomic
	// deduction at approval time.
	balance, err := s.balanceRepo.GetOrInit(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	bucket := leave.BucketForType(req.LeaveType)
	if balance.Bucket(bucket).Balance < days {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	request := leave.LeaveRequest{
		ID:           uuid.New().String(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		EmployeeCode: emp.Code,
		LeaveType:    req.LeaveType,
		FromDate:     from,
		ToDate:       to,
		Days:         days,
		Reason:       req.Reason,
		Managers:     req.Managers,
		Status:       leave.StatusPending,
		AppliedAt:    s.clock.Now(),
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.fanOutRequestNotifications(ctx, created)

	return toResponse(created), nil
}

// fanOutRequestNotifications writes one leave_request copy per selected
// manager plus one for the admin dashboard, all linked by the leave id.
func (s *LeaveServiceImpl) fanOutRequestNotifications(ctx context.Context, request leave.LeaveRequest) {
	title := fmt.Sprintf("Leave request from %s", request.EmployeeName)
	body := fmt.Sprintf("%s (%s) requested %d day(s) of %s from %s to %s",
		request.EmployeeName, request.EmployeeCode, request.Days, request.LeaveType,
		request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"))

	data := map[string]interface{}{
		"leave_id":    request.ID,
		"employee_id": request.EmployeeID,
		"leave_type":  string(request.LeaveType),
		"from_date":   request.FromDate.Format("2006-01-02"),
		"to_date":     request.ToDate.Format("2006-01-02"),
		"days":        request.Days,
	}

	recipients := make([]string, 0, len(request.Managers)+1)
	for _, m := range request.Managers {
		recipients = append(recipients, m.ID)
	}
	recipients = append(recipients, auth.AdminUserID)

	notifications := make([]notification.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		notifications = append(notifications, notification.Notification{
			RecipientID: recipientID,
			Type:        notification.TypeLeaveRequest,
			Title:       title,
			Body:        body,
			LeaveID:     request.ID,
			Data:        data,
		})
	}

	if err := s.notifier.NotifyMany(ctx, notifications); err != nil {
		slog.Error("failed to fan out leave request notifications", "leave_id", request.ID, "error", err)
	}
}

// resolveActionNotification checks that the notification the action came
// through belongs to the actor and points at this leave.
func (s *LeaveServiceImpl) resolveActionNotification(ctx context.Context, leaveID, actorID, notificationID string) error {
	if notificationID == "" {
		return nil
	}

	n, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RecipientID != actorID {
		return notification.ErrNotificationNotOwned
	}
	if n.Type != notification.TypeLeaveRequest || n.LeaveID != leaveID {
		return notification.ErrNotificationNotLeave
	}
	if n.Status != notification.StatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return nil
}

// authorizeActor restricts terminal transitions to the admin and the managers
// the employee selected at submission; the requester holds neither role for
// their own leave.
func authorizeActor(request leave.LeaveRequest, actor leave.Actor) error {
	if actor.Role == string(auth.RoleAdmin) {
		return nil
	}
	if !request.HasManager(actor.ID) {
		return leave.ErrNotAnApprover
	}
	return nil
}

// Approve implements leave.LeaveService. The status transition and the
// balance deduction commit or roll back together.
func (s *LeaveServiceImpl) Approve(ctx context.Context, leaveID string, actor leave.Actor, req leave.ApproveLeaveRequest) error {
	if err := s.resolveActionNotification(ctx, leaveID, actor.ID, req.NotificationID); err != nil {
		return err
	}

	var request leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.requestRepo.GetByID(txCtx, leaveID)
		if err != nil {
			return err
		}
		if err := authorizeActor(request, actor); err != nil {
			return err
		}
		if request.Status != leave.StatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if err := s.requestRepo.MarkApproved(txCtx, leaveID, actor.Name, actor.Role); err != nil {
			return err
		}

		return s.balanceRepo.Deduct(txCtx, request.EmployeeID, leave.BucketForType(request.LeaveType), request.Days)
	})
	if err != nil {
		return err
	}

	s.settleNotifications(ctx, request, notification.StatusApproved, actor.Name, "")
	return nil
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, leaveID string, actor leave.Actor, req leave.RejectLeaveRequest) error {
	if err := s.resolveActionNotification(ctx, leaveID, actor.ID, req.NotificationID); err != nil {
		return err
	}

	request, err := s.requestRepo.GetByID(ctx, leaveID)
	if err != nil {
		return err
	}
	if err := authorizeActor(request, actor); err != nil {
		return err
	}
	if request.Status != leave.StatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	if req.Reason == "" {
		req.Reason = "No reason provided"
	}

	if err := s.requestRepo.MarkRejected(ctx, leaveID, actor.Name, actor.Role, req.Reason); err != nil {
		return err
	}

	s.settleNotifications(ctx, request, notification.StatusRejected, actor.Name, req.Reason)
	return nil
}

// settleNotifications tells the requester the outcome and stamps the action
// on every sibling leave_request copy.
func (s *LeaveServiceImpl) settleNotifications(ctx context.Context, request leave.LeaveRequest, status notification.ActionStatus, actorName, reason string) {
	now := s.clock.Now()

	if err := s.notifRepo.MarkActionedByLeave(ctx, request.ID, status, actorName, now); err != nil {
		slog.Error("failed to reconcile leave notifications", "leave_id", request.ID, "error", err)
	}

	var outcomeType notification.NotificationType
	var title, body string
	if status == notification.StatusApproved {
		outcomeType = notification.TypeLeaveApproved
		title = "Leave approved"
		body = fmt.Sprintf("Your %s from %s to %s was approved by %s",
			request.LeaveType, request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"), actorName)
	} else {
		outcomeType = notification.TypeLeaveRejected
		title = "Leave rejected"
		body = fmt.Sprintf("Your %s from %s to %s was rejected by %s",
			request.LeaveType, request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"), actorName)
		if reason != "" {
			body += ": " + reason
		}
	}

	_, err := s.notifier.Notify(ctx, notification.Notification{
		RecipientID: request.EmployeeID,
		Type:        outcomeType,
		Title:       title,
		Body:        body,
		LeaveID:     request.ID,
		Data: map[string]interface{}{
			"leave_id": request.ID,
			"status":   string(status),
		},
	})
	if err != nil {
		slog.Error("failed to notify requester of leave outcome", "leave_id", request.ID, "error", err)
	}
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return toResponse(request), nil
}

// ListByEmployee implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.requestRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// GetBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string) (leave.LeaveBalance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.LeaveBalance{}, err
	}
	return s.balanceRepo.GetOrInit(ctx, employeeID)
}

// UpdateBalance implements leave.LeaveService. Admin direct edit of one
// bucket's totals.
func (s *LeaveServiceImpl) UpdateBalance(ctx context.Context, employeeID string, req leave.UpdateBalanceRequest) (leave.LeaveBalance, error) {
	if _, err := s.balanceRepo.GetOrInit(ctx, employeeID); err != nil {
		return leave.LeaveBalance{}, err
	}

	if err := s.balanceRepo.Set(ctx, employeeID, req.Bucket, req.Total, req.Used); err != nil {
		return leave.LeaveBalance{}, err
	}

	return s.balanceRepo.GetOrInit(ctx, employeeID)
}

func toResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		EmployeeCode:    r.EmployeeCode,
		LeaveType:       r.LeaveType,
		FromDate:        r.FromDate,
		ToDate:          r.ToDate,
		Days:            r.Days,
		Reason:          r.Reason,
		Managers:        r.Managers,
		Status:          r.Status,
		AppliedAt:       r.AppliedAt,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectedBy:      r.RejectedBy,
		RejectedAt:      r.RejectedAt,
		RejectionReason: r.RejectionReason,
	}
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toResponse(r))
	}
	return responses
}
