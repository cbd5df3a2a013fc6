package holiday

import "context"

// HolidayService - interface for the holiday calendar
type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListByYear(ctx context.Context, year int) (HolidayListResponse, error)
	Delete(ctx context.Context, id string) error
}
