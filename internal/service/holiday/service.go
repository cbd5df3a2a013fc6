package holiday

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oidpl/workforce-backend-go/internal/domain/holiday"
	"github.com/oidpl/workforce-backend-go/internal/pkg/clock"
	"github.com/oidpl/workforce-backend-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	clock clock.Clock
}

func NewHolidayService(repo holiday.HolidayRepository, clk clock.Clock) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: repo, clock: clk}
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		return holiday.HolidayResponse{}, validator.ValidationErrors{{Field: "date", Message: "date must be YYYY-MM-DD"}}
	}

	switch req.Type {
	case holiday.TypeNational, holiday.TypeRestricted, holiday.TypeCompany:
	default:
		return holiday.HolidayResponse{}, holiday.ErrInvalidType
	}

	exists, err := s.HolidayRepository.ExistsOnDate(ctx, date)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if exists {
		return holiday.HolidayResponse{}, holiday.ErrHolidayExists
	}

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Date:        date,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return holiday.ToResponse(created), nil
}

// ListByYear implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListByYear(ctx context.Context, year int) (holiday.HolidayListResponse, error) {
	holidays, err := s.HolidayRepository.ListByYear(ctx, year)
	if err != nil {
		return holiday.HolidayListResponse{}, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.ToResponse(h))
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	upcoming, err := s.HolidayRepository.CountUpcoming(ctx, today)
	if err != nil {
		return holiday.HolidayListResponse{}, err
	}

	return holiday.HolidayListResponse{Holidays: responses, UpcomingCount: upcoming}, nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	return s.HolidayRepository.Delete(ctx, id)
}
