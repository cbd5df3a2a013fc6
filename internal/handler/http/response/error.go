package response

import (
	"errors"
	"net/http"

	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/domain/holiday"
	"github.com/oidpl/workforce-backend-go/internal/domain/leave"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/domain/payslip"
	"github.com/oidpl/workforce-backend-go/internal/domain/tracking"
	"github.com/oidpl/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrEmployeeInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, "Current password is incorrect", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrMobileExists):
		Conflict(w, "Mobile number already registered")
	case errors.Is(err, employee.ErrInvalidMobile):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrInvalidCode):
		BadRequest(w, err.Error(), nil)

	// Tracking domain errors
	case errors.Is(err, tracking.ErrOutsideOfficeHours):
		Forbidden(w, err.Error())
	case errors.Is(err, tracking.ErrSharingDisabled):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrNoManagersSelected):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrNotAnApprover):
		Forbidden(w, err.Error())

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotificationNotOwned):
		Forbidden(w, "Notification belongs to another recipient")
	case errors.Is(err, notification.ErrNotificationNotLeave):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, notification.ErrNotificationActioned):
		Conflict(w, err.Error())

	// Payslip domain errors
	case errors.Is(err, payslip.ErrSalarySlipNotFound):
		NotFound(w, "Salary slip not found")
	case errors.Is(err, payslip.ErrSalarySlipExists):
		Conflict(w, "Salary slip already exists for this period")
	case errors.Is(err, payslip.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payslip.ErrInvalidAmounts):
		BadRequest(w, err.Error(), nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists on this date")
	case errors.Is(err, holiday.ErrInvalidType):
		BadRequest(w, err.Error(), nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
