package tracking

import (
	"context"
	"time"
)

type TrackingService interface {
	// EnableSharing turns sharing on for an employee. Rejected with
	// ErrOutsideOfficeHours when the gate is Outside.
	EnableSharing(ctx context.Context, employeeID string) (StatusResponse, error)

	// DisableSharing is the manual override (e.g. approved leave). Allowed
	// while Inside; notifies admin with a location_off notification.
	DisableSharing(ctx context.Context, employeeID string) error

	// ReportLocation records one sample: current-location overwrite plus an
	// appended history row, both carrying the same timestamp.
	ReportLocation(ctx context.Context, employeeID string, req ReportLocationRequest) (LocationResponse, error)

	Status(ctx context.Context, employeeID string) (StatusResponse, error)
	DayReport(ctx context.Context, employeeID string, day time.Time) (DayReport, error)

	// EnforceOfficeHours flips sharing state for all employees when the gate
	// boundary is crossed. Run by the scheduler every minute.
	EnforceOfficeHours(ctx context.Context) error

	// PurgeExpiredHistory deletes history rows older than the retention
	// horizon. Run by the scheduler hourly.
	PurgeExpiredHistory(ctx context.Context) (int64, error)
}
