package cron

import (
	"context"
	"time"

	"github.com/oidpl/workforce-backend-go/internal/domain/tracking"
)

type TrackingJobs struct {
	trackingSvc tracking.TrackingService
}

func NewTrackingJobs(trackingSvc tracking.TrackingService) *TrackingJobs {
	return &TrackingJobs{trackingSvc: trackingSvc}
}

func (j *TrackingJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("enforce_office_hours", 1*time.Minute, j.EnforceOfficeHours)
	scheduler.AddJob("location_history_retention", 1*time.Hour, j.PurgeExpiredHistory)
}

// EnforceOfficeHours flips location sharing when the office-hours boundary is
// crossed.
func (j *TrackingJobs) EnforceOfficeHours(ctx context.Context) error {
	return j.trackingSvc.EnforceOfficeHours(ctx)
}

// PurgeExpiredHistory deletes location history past the retention horizon.
func (j *TrackingJobs) PurgeExpiredHistory(ctx context.Context) error {
	_, err := j.trackingSvc.PurgeExpiredHistory(ctx)
	return err
}
