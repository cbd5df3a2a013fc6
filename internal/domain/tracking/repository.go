package tracking

import (
	"context"
	"time"
)

// HistoryRepository is the append-only location history store.
type HistoryRepository interface {
	Append(ctx context.Context, rec HistoryRecord) (HistoryRecord, error)
	ListByEmployeeAndDay(ctx context.Context, employeeID string, dayStart time.Time) ([]HistoryRecord, error)

	// DeleteOlderThan removes every row with a timestamp before cutoff and
	// returns the number of rows deleted. The sweep is idempotent.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
