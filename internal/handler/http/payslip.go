package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/payslip"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/middleware"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/response"
	"github.com/shopspring/decimal"
)

type PayslipHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListForEmployee(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PayslipHandlerImpl struct {
	payslipService payslip.SalarySlipService
}

func NewPayslipHandler(payslipService payslip.SalarySlipService) PayslipHandler {
	return &PayslipHandlerImpl{payslipService: payslipService}
}

// Upload implements PayslipHandler. Multipart form: pdf file plus period and
// amount fields.
func (h *PayslipHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required", nil)
		return
	}
	defer file.Close()

	req, err := parseUploadForm(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	req.FileName = header.Filename

	created, err := h.payslipService.Upload(r.Context(), middleware.UserID(r), req, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary slip uploaded", created)
}

func parseUploadForm(r *http.Request) (payslip.UploadSalarySlipRequest, error) {
	var req payslip.UploadSalarySlipRequest
	var err error

	req.EmployeeID = r.FormValue("employee_id")
	if req.Month, err = strconv.Atoi(r.FormValue("month")); err != nil {
		return req, payslip.ErrInvalidPeriod
	}
	if req.Year, err = strconv.Atoi(r.FormValue("year")); err != nil {
		return req, payslip.ErrInvalidPeriod
	}
	if req.GrossPay, err = decimal.NewFromString(r.FormValue("gross_pay")); err != nil {
		return req, payslip.ErrInvalidAmounts
	}
	if req.Deductions, err = decimal.NewFromString(r.FormValue("deductions")); err != nil {
		return req, payslip.ErrInvalidAmounts
	}
	if req.NetPay, err = decimal.NewFromString(r.FormValue("net_pay")); err != nil {
		return req, payslip.ErrInvalidAmounts
	}

	return req, nil
}

// ListMine implements PayslipHandler.
func (h *PayslipHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	slips, err := h.payslipService.ListByEmployee(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slips)
}

// ListForEmployee implements PayslipHandler.
func (h *PayslipHandlerImpl) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	slips, err := h.payslipService.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slips)
}

// ListAll implements PayslipHandler.
func (h *PayslipHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	slips, err := h.payslipService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slips)
}

// Download implements PayslipHandler. Streams the PDF.
func (h *PayslipHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	slip, err := h.payslipService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Employees can only fetch their own slips
	userID := middleware.UserID(r)
	if middleware.UserRole(r) != auth.RoleAdmin && slip.EmployeeID != userID {
		response.Forbidden(w, "Not your salary slip")
		return
	}

	rc, slip, err := h.payslipService.Download(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+slip.FileName+"\"")
	_, _ = io.Copy(w, rc)
}

// Delete implements PayslipHandler.
func (h *PayslipHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payslipService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary slip deleted", nil)
}
