package employee

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/pkg/storage"
	"github.com/oidpl/workforce-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	storage storage.FileStorage
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository, fileStorage storage.FileStorage) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
		storage:            fileStorage,
	}
}

func (s *EmployeeServiceImpl) toResponse(ctx context.Context, emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:             emp.ID,
		Name:           emp.Name,
		Code:           emp.Code,
		Mobile:         emp.Mobile,
		Designation:    emp.Designation,
		Department:     emp.Department,
		Active:         emp.Active,
		SharingEnabled: emp.SharingEnabled,
		CreatedAt:      emp.CreatedAt,
	}

	if emp.ProfileImage != nil {
		if url, err := s.storage.GetURL(ctx, *emp.ProfileImage, 0); err == nil {
			resp.ProfileImageURL = &url
		}
	}

	if emp.Location != nil {
		resp.Location = &employee.CurrentLocationResponse{
			Latitude:  emp.Location.Latitude,
			Longitude: emp.Location.Longitude,
			Address:   emp.Location.Address,
			Timestamp: emp.Location.Timestamp,
		}
	}

	return resp
}

func validateCreate(req employee.CreateEmployeeRequest) error {
	errs := validator.ValidationErrors{}

	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmployeeCode(req.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "invalid employee code format"})
	}
	if !validator.IsValidMobile(validator.NormalizeMobile(req.Mobile)) {
		errs = append(errs, validator.ValidationError{Field: "mobile", Message: "mobile number must be 10 digits"})
	}
	if !validator.IsValidPassword(req.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", validator.MinPasswordLength)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := validateCreate(req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	mobile := validator.NormalizeMobile(req.Mobile)

	if exists, err := s.EmployeeRepository.ExistsByCode(ctx, req.Code); err != nil {
		return employee.EmployeeResponse{}, err
	} else if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	if exists, err := s.EmployeeRepository.ExistsByMobile(ctx, mobile); err != nil {
		return employee.EmployeeResponse{}, err
	} else if exists {
		return employee.EmployeeResponse{}, employee.ErrMobileExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Code:         req.Code,
		Mobile:       mobile,
		PasswordHash: string(hash),
		Designation:  req.Designation,
		Department:   req.Department,
		Active:       true,
	}

	created, err := s.EmployeeRepository.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.toResponse(ctx, created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(ctx, emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, limit int) ([]employee.EmployeeResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	employees, err := s.EmployeeRepository.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, s.toResponse(ctx, emp))
	}

	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}
	if req.Mobile != nil {
		mobile := validator.NormalizeMobile(*req.Mobile)
		if !validator.IsValidMobile(mobile) {
			return employee.EmployeeResponse{}, employee.ErrInvalidMobile
		}
		if mobile != emp.Mobile {
			if exists, err := s.EmployeeRepository.ExistsByMobile(ctx, mobile); err != nil {
				return employee.EmployeeResponse{}, err
			} else if exists {
				return employee.EmployeeResponse{}, employee.ErrMobileExists
			}
			emp.Mobile = mobile
		}
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.toResponse(ctx, emp), nil
}

// UpdateProfile implements employee.EmployeeService. Self-service edits are
// limited to name and mobile.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	return s.Update(ctx, id, employee.UpdateEmployeeRequest{
		Name:   req.Name,
		Mobile: req.Mobile,
	})
}

// UploadProfileImage implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadProfileImage(ctx context.Context, id string, file io.Reader, filename string) (string, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, id); err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	path := fmt.Sprintf("profiles/%s%s", id, ext)

	stored, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to store profile image: %w", err)
	}

	if err := s.EmployeeRepository.UpdateProfileImage(ctx, id, stored); err != nil {
		return "", err
	}

	return s.storage.GetURL(ctx, stored, 24*time.Hour)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// ChangePassword implements employee.EmployeeService. Admin reset path, no
// current-password check.
func (s *EmployeeServiceImpl) ChangePassword(ctx context.Context, id string, newPassword string) error {
	if !validator.IsValidPassword(newPassword) {
		return validator.ValidationErrors{{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", validator.MinPasswordLength)}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.EmployeeRepository.UpdatePassword(ctx, id, string(hash))
}

// RegisterPushToken implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RegisterPushToken(ctx context.Context, id string, token string) error {
	if validator.IsEmpty(token) {
		return s.EmployeeRepository.UpdatePushToken(ctx, id, nil)
	}
	return s.EmployeeRepository.UpdatePushToken(ctx, id, &token)
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.EmployeeRepository.Delete(ctx, id)
}

// Import implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Import(ctx context.Context, rows []employee.ImportRow) (employee.ImportResult, error) {
	var result employee.ImportResult

	for i, row := range rows {
		_, err := s.Create(ctx, employee.CreateEmployeeRequest{
			Name:        row.Name,
			Code:        row.Code,
			Mobile:      row.Mobile,
			Password:    row.Password,
			Designation: row.Designation,
			Department:  row.Department,
		})
		if err != nil {
			result.FailCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", i+1, row.Code, err))
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}
