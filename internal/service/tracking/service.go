package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/domain/tracking"
	"github.com/oidpl/workforce-backend-go/internal/pkg/clock"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
	"github.com/oidpl/workforce-backend-go/internal/pkg/geocode"
	"github.com/oidpl/workforce-backend-go/internal/pkg/sse"
	"github.com/oidpl/workforce-backend-go/internal/pkg/utils"
)

type TrackingServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	historyRepo  tracking.HistoryRepository
	notifier     notification.NotificationService
	geocoder     geocode.Geocoder
	hub          *sse.Hub
	tx           database.TxManager
	clock        clock.Clock

	// lastGate remembers the gate position seen by the previous enforcement
	// tick, so sharing is only flipped on boundary crossings and a manual
	// disable during office hours stays disabled.
	mu       sync.Mutex
	lastGate tracking.GateState
}

func NewTrackingService(
	employeeRepo employee.EmployeeRepository,
	historyRepo tracking.HistoryRepository,
	notifier notification.NotificationService,
	geocoder geocode.Geocoder,
	hub *sse.Hub,
	tx database.TxManager,
	clk clock.Clock,
) tracking.TrackingService {
	return &TrackingServiceImpl{
		employeeRepo: employeeRepo,
		historyRepo:  historyRepo,
		notifier:     notifier,
		geocoder:     geocoder,
		hub:          hub,
		tx:           tx,
		clock:        clk,
		lastGate:     tracking.GateStateAt(clk.Now()),
	}
}

// EnableSharing implements tracking.TrackingService.
func (s *TrackingServiceImpl) EnableSharing(ctx context.Context, employeeID string) (tracking.StatusResponse, error) {
	now := s.clock.Now()
	if !tracking.WithinOfficeHours(now) {
		return tracking.StatusResponse{}, tracking.ErrOutsideOfficeHours
	}

	if err := s.employeeRepo.SetSharing(ctx, employeeID, true); err != nil {
		return tracking.StatusResponse{}, err
	}

	return s.Status(ctx, employeeID)
}

// DisableSharing implements tracking.TrackingService.
func (s *TrackingServiceImpl) DisableSharing(ctx context.Context, employeeID string) error {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.SetSharing(ctx, employeeID, false); err != nil {
		return err
	}

	// Only a manual opt-out during office hours is worth telling the admin
	// about; repeated disables and after-hours calls stay quiet.
	if !emp.SharingEnabled || !tracking.WithinOfficeHours(s.clock.Now()) {
		return nil
	}

	_, err = s.notifier.Notify(ctx, notification.Notification{
		RecipientID: auth.AdminUserID,
		Type:        notification.TypeLocationOff,
		Title:       "Location sharing turned off",
		Body:        fmt.Sprintf("%s (%s) turned off location sharing", emp.Name, emp.Code),
		Data: map[string]interface{}{
			"employee_id":   emp.ID,
			"employee_code": emp.Code,
		},
	})
	if err != nil {
		slog.Warn("failed to notify admin of sharing disable", "employee_id", employeeID, "error", err)
	}

	return nil
}

// ReportLocation implements tracking.TrackingService. One accepted sample
// produces a current-location overwrite and a history append carrying the
// same timestamp.
func (s *TrackingServiceImpl) ReportLocation(ctx context.Context, employeeID string, req tracking.ReportLocationRequest) (tracking.LocationResponse, error) {
	now := s.clock.Now()
	if !tracking.WithinOfficeHours(now) {
		return tracking.LocationResponse{}, tracking.ErrOutsideOfficeHours
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return tracking.LocationResponse{}, err
	}
	if !emp.SharingEnabled {
		return tracking.LocationResponse{}, tracking.ErrSharingDisabled
	}

	// A device without a fix still produces a sample: fall back to the demo
	// office position rather than dropping the report.
	lat, lon := tracking.DemoLatitude, tracking.DemoLongitude
	address := tracking.DemoAddress
	if req.Latitude != nil && req.Longitude != nil {
		lat, lon = *req.Latitude, *req.Longitude
		address = s.resolveAddress(ctx, lat, lon)
	}

	rec := tracking.HistoryRecord{
		ID:             uuid.New().String(),
		EmployeeID:     emp.ID,
		Latitude:       lat,
		Longitude:      lon,
		Address:        address,
		Timestamp:      now,
		EmployeeName:   emp.Name,
		EmployeeCode:   emp.Code,
		EmployeeMobile: emp.Mobile,
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.employeeRepo.SetLocation(txCtx, emp.ID, lat, lon, address, now); err != nil {
			return err
		}
		_, err := s.historyRepo.Append(txCtx, rec)
		return err
	})
	if err != nil {
		return tracking.LocationResponse{}, err
	}

	resp := tracking.LocationResponse{
		Latitude:  lat,
		Longitude: lon,
		Address:   address,
		Timestamp: now,
	}

	// Live map update for the admin dashboard
	s.hub.Publish(auth.AdminUserID, sse.Event{
		RecipientID: auth.AdminUserID,
		Event:       "location",
		Data: map[string]interface{}{
			"employee_id":   emp.ID,
			"employee_name": emp.Name,
			"employee_code": emp.Code,
			"location":      resp,
		},
	})

	return resp, nil
}

func (s *TrackingServiceImpl) resolveAddress(ctx context.Context, lat, lon float64) string {
	address, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil || address == "" {
		return geocode.FallbackAddress(lat, lon)
	}
	return address
}

// Status implements tracking.TrackingService.
func (s *TrackingServiceImpl) Status(ctx context.Context, employeeID string) (tracking.StatusResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return tracking.StatusResponse{}, err
	}

	resp := tracking.StatusResponse{
		GateState:      tracking.GateStateAt(s.clock.Now()),
		SharingEnabled: emp.SharingEnabled,
	}

	if emp.Location != nil {
		resp.Location = &tracking.LocationResponse{
			Latitude:  emp.Location.Latitude,
			Longitude: emp.Location.Longitude,
			Address:   emp.Location.Address,
			Timestamp: emp.Location.Timestamp,
		}
	}

	return resp, nil
}

// DayReport implements tracking.TrackingService.
func (s *TrackingServiceImpl) DayReport(ctx context.Context, employeeID string, day time.Time) (tracking.DayReport, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return tracking.DayReport{}, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	records, err := s.historyRepo.ListByEmployeeAndDay(ctx, employeeID, dayStart)
	if err != nil {
		return tracking.DayReport{}, err
	}

	report := tracking.DayReport{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.Name,
		EmployeeCode:   emp.Code,
		EmployeeMobile: emp.Mobile,
		Date:           dayStart.Format("2006-01-02"),
		SampleCount:    len(records),
	}

	for i, rec := range records {
		report.Rows = append(report.Rows, tracking.DayReportRow{
			Time:      rec.Timestamp,
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			Address:   rec.Address,
		})
		if i > 0 {
			prev := records[i-1]
			report.DistanceMeters += utils.HaversineDistance(prev.Latitude, prev.Longitude, rec.Latitude, rec.Longitude)
		}
	}

	if len(records) > 0 {
		first := records[0].Timestamp
		last := records[len(records)-1].Timestamp
		report.FirstSeenAt = &first
		report.LastSeenAt = &last
	}

	return report, nil
}

// EnforceOfficeHours implements tracking.TrackingService. Sharing only flips
// when the gate boundary is crossed between two ticks; steady state is a
// no-op so manual overrides survive.
func (s *TrackingServiceImpl) EnforceOfficeHours(ctx context.Context) error {
	gate := tracking.GateStateAt(s.clock.Now())

	s.mu.Lock()
	previous := s.lastGate
	s.lastGate = gate
	s.mu.Unlock()

	if gate == previous {
		return nil
	}

	switch gate {
	case tracking.GateInside:
		return s.enableAll(ctx)
	default:
		return s.disableAll(ctx)
	}
}

func (s *TrackingServiceImpl) enableAll(ctx context.Context) error {
	employees, err := s.employeeRepo.List(ctx, 500)
	if err != nil {
		return fmt.Errorf("failed to list employees for gate open: %w", err)
	}

	var enabled int
	for _, emp := range employees {
		if !emp.Active || emp.SharingEnabled {
			continue
		}
		if err := s.employeeRepo.SetSharing(ctx, emp.ID, true); err != nil {
			slog.Error("failed to enable sharing at gate open", "employee_id", emp.ID, "error", err)
			continue
		}
		// Nudge the device over its event stream so the first sample lands
		// now instead of on the next status poll.
		s.hub.Publish(emp.ID, sse.Event{
			RecipientID: emp.ID,
			Event:       "sharing_enabled",
			Data:        map[string]interface{}{"sharing_enabled": true},
		})
		enabled++
	}

	slog.Info("office hours started, sharing enabled", "employees", enabled)
	return nil
}

func (s *TrackingServiceImpl) disableAll(ctx context.Context) error {
	employees, err := s.employeeRepo.ListSharingEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sharing employees for gate close: %w", err)
	}

	var disabled int
	for _, emp := range employees {
		if err := s.employeeRepo.SetSharing(ctx, emp.ID, false); err != nil {
			slog.Error("failed to disable sharing at gate close", "employee_id", emp.ID, "error", err)
			continue
		}
		disabled++
	}

	slog.Info("office hours ended, sharing disabled", "employees", disabled)
	return nil
}

// PurgeExpiredHistory implements tracking.TrackingService.
func (s *TrackingServiceImpl) PurgeExpiredHistory(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-tracking.RetentionPeriod)

	deleted, err := s.historyRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		slog.Info("purged expired location history", "rows", deleted, "cutoff", cutoff)
	}

	return deleted, nil
}
