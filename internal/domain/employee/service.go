package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, limit int) ([]EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (EmployeeResponse, error)
	UploadProfileImage(ctx context.Context, id string, file io.Reader, filename string) (string, error)
	ChangePassword(ctx context.Context, id string, newPassword string) error
	RegisterPushToken(ctx context.Context, id string, token string) error
	Delete(ctx context.Context, id string) error

	// Import creates employees in bulk, reporting per-row failures.
	Import(ctx context.Context, rows []ImportRow) (ImportResult, error)
}
