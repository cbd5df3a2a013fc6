package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/oidpl/workforce-backend-go/internal/domain/holiday"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, name, date, type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, h.ID, h.Name, h.Date, h.Type, h.Description).Scan(&h.CreatedAt)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// ExistsOnDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM holidays WHERE date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday date: %w", err)
	}

	return exists, nil
}

// ListByYear implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, type, description, created_at
		FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.Type, &h.Description, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}

// CountUpcoming implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM holidays WHERE date >= $1`, from).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming holidays: %w", err)
	}

	return count, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}
