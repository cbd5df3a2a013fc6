package holiday

import (
	"context"
	"time"
)

// HolidayRepository - interface for holidays table
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}
