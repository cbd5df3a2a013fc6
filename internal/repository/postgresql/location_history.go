package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/oidpl/workforce-backend-go/internal/domain/tracking"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
)

type historyRepositoryImpl struct {
	db *database.DB
}

func NewHistoryRepository(db *database.DB) tracking.HistoryRepository {
	return &historyRepositoryImpl{db: db}
}

// Append implements tracking.HistoryRepository.
func (h *historyRepositoryImpl) Append(ctx context.Context, rec tracking.HistoryRecord) (tracking.HistoryRecord, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO location_history (
			id, employee_id, latitude, longitude, address, timestamp,
			employee_name, employee_code, employee_mobile
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		rec.ID, rec.EmployeeID, rec.Latitude, rec.Longitude, rec.Address,
		rec.Timestamp, rec.EmployeeName, rec.EmployeeCode, rec.EmployeeMobile,
	)
	if err != nil {
		return tracking.HistoryRecord{}, fmt.Errorf("failed to append location history: %w", err)
	}

	return rec, nil
}

// ListByEmployeeAndDay implements tracking.HistoryRepository.
func (h *historyRepositoryImpl) ListByEmployeeAndDay(ctx context.Context, employeeID string, dayStart time.Time) ([]tracking.HistoryRecord, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, employee_id, latitude, longitude, address, timestamp,
			employee_name, employee_code, employee_mobile
		FROM location_history
		WHERE employee_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp
	`

	rows, err := q.Query(ctx, query, employeeID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to list location history: %w", err)
	}
	defer rows.Close()

	var records []tracking.HistoryRecord
	for rows.Next() {
		var rec tracking.HistoryRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Latitude, &rec.Longitude, &rec.Address,
			&rec.Timestamp, &rec.EmployeeName, &rec.EmployeeCode, &rec.EmployeeMobile,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// DeleteOlderThan implements tracking.HistoryRepository.
func (h *historyRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, h.db)

	tag, err := q.Exec(ctx, `DELETE FROM location_history WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge location history: %w", err)
	}

	return tag.RowsAffected(), nil
}
