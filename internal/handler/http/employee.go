package http

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/middleware"
	"github.com/oidpl/workforce-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UploadProfileImage(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	RegisterPushToken(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", created)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Me implements EmployeeHandler. The employee's own profile.
func (h *EmployeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" || userID == auth.AdminUserID {
		response.NotFound(w, "Employee not found")
		return
	}

	emp, err := h.employeeService.Get(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	employees, err := h.employeeService.List(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.employeeService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// UpdateProfile implements EmployeeHandler. Self-service profile edit.
func (h *EmployeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.employeeService.UpdateProfile(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// UploadProfileImage implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "image file is required", nil)
		return
	}
	defer file.Close()

	url, err := h.employeeService.UploadProfileImage(r.Context(), middleware.UserID(r), file, header.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"profile_image_url": url})
}

// ResetPassword implements EmployeeHandler. Admin-side password reset.
func (h *EmployeeHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.ChangePassword(r.Context(), chi.URLParam(r, "id"), req.Password); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password reset", nil)
}

// RegisterPushToken implements EmployeeHandler.
func (h *EmployeeHandlerImpl) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.RegisterPushToken(r.Context(), middleware.UserID(r), req.Token); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Push token registered", nil)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}

// Import implements EmployeeHandler. Accepts a CSV with columns
// name,code,mobile,password,designation,department.
func (h *EmployeeHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required", nil)
		return
	}
	defer file.Close()

	rows, err := parseImportCSV(file)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.employeeService.Import(r.Context(), rows)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseImportCSV(file io.Reader) ([]employee.ImportRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 6

	var rows []employee.ImportRow
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// Header row
		if first && record[0] == "name" {
			first = false
			continue
		}
		first = false

		rows = append(rows, employee.ImportRow{
			Name:        record[0],
			Code:        record[1],
			Mobile:      record[2],
			Password:    record[3],
			Designation: record[4],
			Department:  record[5],
		})
	}

	return rows, nil
}
