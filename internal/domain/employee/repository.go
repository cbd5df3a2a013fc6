package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByMobile(ctx context.Context, mobile string) (Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)
	List(ctx context.Context, limit int) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateProfileImage(ctx context.Context, id string, path string) error
	UpdatePushToken(ctx context.Context, id string, token *string) error
	Delete(ctx context.Context, id string) error

	// Tracking state. SetLocation overwrites the embedded current location;
	// the caller supplies the timestamp so it can be shared with the matching
	// history row.
	SetSharing(ctx context.Context, id string, enabled bool) error
	SetLocation(ctx context.Context, id string, lat, lon float64, address string, ts time.Time) error
	ListSharingEnabled(ctx context.Context) ([]Employee, error)
}
