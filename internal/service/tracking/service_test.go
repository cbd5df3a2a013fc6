package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/domain/tracking"
	"github.com/oidpl/workforce-backend-go/internal/pkg/clock"
	"github.com/oidpl/workforce-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]*employee.Employee)}
	for i := range emps {
		emp := emps[i]
		repo.employees[emp.ID] = &emp
	}
	return repo
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = &emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return *emp, nil
}

func (f *fakeEmployeeRepo) GetByMobile(ctx context.Context, mobile string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Mobile == mobile {
			return *emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	for _, emp := range f.employees {
		if emp.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeRepo) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	for _, emp := range f.employees {
		if emp.Mobile == mobile {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, limit int) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, *emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	f.employees[emp.ID] = &emp
	return nil
}

func (f *fakeEmployeeRepo) UpdatePassword(ctx context.Context, id, hash string) error { return nil }
func (f *fakeEmployeeRepo) UpdateProfileImage(ctx context.Context, id, path string) error {
	return nil
}
func (f *fakeEmployeeRepo) UpdatePushToken(ctx context.Context, id string, token *string) error {
	return nil
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepo) SetSharing(ctx context.Context, id string, enabled bool) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.SharingEnabled = enabled
	return nil
}

func (f *fakeEmployeeRepo) SetLocation(ctx context.Context, id string, lat, lon float64, address string, ts time.Time) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.Location = &employee.CurrentLocation{Latitude: lat, Longitude: lon, Address: address, Timestamp: ts}
	return nil
}

func (f *fakeEmployeeRepo) ListSharingEnabled(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.SharingEnabled {
			out = append(out, *emp)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	records []tracking.HistoryRecord
}

func (f *fakeHistoryRepo) Append(ctx context.Context, rec tracking.HistoryRecord) (tracking.HistoryRecord, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeHistoryRepo) ListByEmployeeAndDay(ctx context.Context, employeeID string, dayStart time.Time) ([]tracking.HistoryRecord, error) {
	dayEnd := dayStart.Add(24 * time.Hour)
	var out []tracking.HistoryRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Timestamp.Before(dayStart) && rec.Timestamp.Before(dayEnd) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []tracking.HistoryRecord
	var deleted int64
	for _, rec := range f.records {
		if rec.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	f.records = kept
	return deleted, nil
}

type fakeNotifier struct {
	sent []notification.Notification
}

func (f *fakeNotifier) Notify(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	f.sent = append(f.sent, n)
	return n, nil
}

func (f *fakeNotifier) NotifyMany(ctx context.Context, ns []notification.Notification) error {
	f.sent = append(f.sent, ns...)
	return nil
}

func (f *fakeNotifier) ListForRecipient(ctx context.Context, recipientID string) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) GetByID(ctx context.Context, recipientID, id string) (notification.NotificationResponse, error) {
	return notification.NotificationResponse{}, notification.ErrNotificationNotFound
}

func (f *fakeNotifier) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return 0, nil
}
func (f *fakeNotifier) MarkRead(ctx context.Context, recipientID, id string) error { return nil }
func (f *fakeNotifier) MarkAllRead(ctx context.Context, recipientID string) error  { return nil }
func (f *fakeNotifier) Delete(ctx context.Context, recipientID, id string) error   { return nil }

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type staticGeocoder struct {
	address string
	err     error
}

func (g staticGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return g.address, g.err
}

func insideOfficeHours() time.Time {
	return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
}

func outsideOfficeHours() time.Time {
	return time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)
}

func newService(employees *fakeEmployeeRepo, history *fakeHistoryRepo, notifier *fakeNotifier, geo staticGeocoder, now time.Time) tracking.TrackingService {
	return NewTrackingService(employees, history, notifier, geo, sse.NewHub(), fakeTx{}, clock.Fixed(now))
}

func sharingEmployee() employee.Employee {
	return employee.Employee{
		ID:             "emp-1",
		Name:           "Asha Verma",
		Code:           "OIDPL007",
		Mobile:         "9876543210",
		Active:         true,
		SharingEnabled: true,
	}
}

func TestReportLocation_WritesSameTimestampToBothStores(t *testing.T) {
	employees := newFakeEmployeeRepo(sharingEmployee())
	history := &fakeHistoryRepo{}
	now := insideOfficeHours()
	svc := newService(employees, history, &fakeNotifier{}, staticGeocoder{address: "MG Road, Gurugram"}, now)

	lat, lon := 28.47, 77.03
	resp, err := svc.ReportLocation(context.Background(), "emp-1", tracking.ReportLocationRequest{Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)

	require.Len(t, history.records, 1)
	emp, _ := employees.GetByID(context.Background(), "emp-1")
	require.NotNil(t, emp.Location)

	assert.Equal(t, now, resp.Timestamp)
	assert.Equal(t, now, history.records[0].Timestamp)
	assert.Equal(t, now, emp.Location.Timestamp)
	assert.Equal(t, "MG Road, Gurugram", emp.Location.Address)
}

func TestReportLocation_HistorySnapshotsIdentity(t *testing.T) {
	employees := newFakeEmployeeRepo(sharingEmployee())
	history := &fakeHistoryRepo{}
	svc := newService(employees, history, &fakeNotifier{}, staticGeocoder{address: "x"}, insideOfficeHours())

	lat, lon := 28.47, 77.03
	_, err := svc.ReportLocation(context.Background(), "emp-1", tracking.ReportLocationRequest{Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)

	rec := history.records[0]
	assert.Equal(t, "Asha Verma", rec.EmployeeName)
	assert.Equal(t, "OIDPL007", rec.EmployeeCode)
	assert.Equal(t, "9876543210", rec.EmployeeMobile)
}

func TestReportLocation_MissingCoordinatesFallsBackToDemo(t *testing.T) {
	employees := newFakeEmployeeRepo(sharingEmployee())
	history := &fakeHistoryRepo{}
	svc := newService(employees, history, &fakeNotifier{}, staticGeocoder{err: errors.New("should not be called")}, insideOfficeHours())

	resp, err := svc.ReportLocation(context.Background(), "emp-1", tracking.ReportLocationRequest{})
	require.NoError(t, err)

	assert.Equal(t, tracking.DemoLatitude, resp.Latitude)
	assert.Equal(t, tracking.DemoLongitude, resp.Longitude)
	assert.Equal(t, tracking.DemoAddress, resp.Address)
}

func TestReportLocation_GeocodeFailureFallsBackToCoordinates(t *testing.T) {
	employees := newFakeEmployeeRepo(sharingEmployee())
	svc := newService(employees, &fakeHistoryRepo{}, &fakeNotifier{}, staticGeocoder{err: errors.New("quota exceeded")}, insideOfficeHours())

	lat, lon := 28.4595, 77.0266
	resp, err := svc.ReportLocation(context.Background(), "emp-1", tracking.ReportLocationRequest{Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)

	assert.Equal(t, "28.4595°, 77.0266°", resp.Address)
}

func TestReportLocation_OutsideOfficeHoursRejected(t *testing.T) {
	employees := newFakeEmployeeRepo(sharingEmployee())
	history := &fakeHistoryRepo{}
	svc := newService(employees, history, &fakeNotifier{}, staticGeocoder{address: "x"}, outsideOfficeHours())

	lat, lon := 28.47, 77.03
	_, err := svc.ReportLocation(context.Background(), "emp-1", tracking.ReportLocationRequest{Latitude: &lat, Longitude: &lon})

	assert.ErrorIs(t, err, tracking.ErrOutsideOfficeHours)
	assert.Empty(t, history.records)
}

func TestReportLocation_SharingDisabledRejected(t *testing.T) {
	emp := sharingEmployee()
	emp.SharingEnabled = false
	employees := newFakeEmployeeRepo(emp)
	svc := newService(employees, &fakeHistoryRepo{}, &fakeNotifier{}, staticGeocoder{address: "x"}, insideOfficeHours())

	lat, lon := 28.47, 77.03
	_, err := svc.ReportLocation(context.Background(), "emp-1", tracking.ReportLocationRequest{Latitude: &lat, Longitude: &lon})

	assert.ErrorIs(t, err, tracking.ErrSharingDisabled)
}

func TestEnableSharing_OutsideOfficeHoursRejected(t *testing.T) {
	emp := sharingEmployee()
	emp.SharingEnabled = false
	employees := newFakeEmployeeRepo(emp)
	svc := newService(employees, &fakeHistoryRepo{}, &fakeNotifier{}, staticGeocoder{}, outsideOfficeHours())

	_, err := svc.EnableSharing(context.Background(), "emp-1")
	assert.ErrorIs(t, err, tracking.ErrOutsideOfficeHours)

	got, _ := employees.GetByID(context.Background(), "emp-1")
	assert.False(t, got.SharingEnabled)
}

func TestDisableSharing_NotifiesAdmin(t *testing.T) {
	employees := newFakeEmployeeRepo(sharingEmployee())
	notifier := &fakeNotifier{}
	svc := newService(employees, &fakeHistoryRepo{}, notifier, staticGeocoder{}, insideOfficeHours())

	require.NoError(t, svc.DisableSharing(context.Background(), "emp-1"))

	got, _ := employees.GetByID(context.Background(), "emp-1")
	assert.False(t, got.SharingEnabled)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, auth.AdminUserID, notifier.sent[0].RecipientID)
	assert.Equal(t, notification.TypeLocationOff, notifier.sent[0].Type)
}

func TestDisableSharing_AlreadyOffStaysQuiet(t *testing.T) {
	emp := sharingEmployee()
	emp.SharingEnabled = false
	employees := newFakeEmployeeRepo(emp)
	notifier := &fakeNotifier{}
	svc := newService(employees, &fakeHistoryRepo{}, notifier, staticGeocoder{}, insideOfficeHours())

	require.NoError(t, svc.DisableSharing(context.Background(), "emp-1"))

	assert.Empty(t, notifier.sent)
}

func TestDisableSharing_OutsideOfficeHoursStaysQuiet(t *testing.T) {
	employees := newFakeEmployeeRepo(sharingEmployee())
	notifier := &fakeNotifier{}
	svc := newService(employees, &fakeHistoryRepo{}, notifier, staticGeocoder{}, outsideOfficeHours())

	require.NoError(t, svc.DisableSharing(context.Background(), "emp-1"))

	got, _ := employees.GetByID(context.Background(), "emp-1")
	assert.False(t, got.SharingEnabled)
	assert.Empty(t, notifier.sent)
}

func TestEnforceOfficeHours_NoFlipWithoutTransition(t *testing.T) {
	emp := sharingEmployee()
	emp.SharingEnabled = false
	employees := newFakeEmployeeRepo(emp)

	// Service starts with the gate already inside, then ticks inside again:
	// a manual disable must survive.
	svc := newService(employees, &fakeHistoryRepo{}, &fakeNotifier{}, staticGeocoder{}, insideOfficeHours())

	require.NoError(t, svc.EnforceOfficeHours(context.Background()))

	got, _ := employees.GetByID(context.Background(), "emp-1")
	assert.False(t, got.SharingEnabled)
}

func TestEnforceOfficeHours_DisablesAllAtGateClose(t *testing.T) {
	employees := newFakeEmployeeRepo(sharingEmployee())

	// Gate was inside when the service started; the clock has since moved
	// past close.
	stepClock := &steppingClock{times: []time.Time{insideOfficeHours(), outsideOfficeHours()}}
	svc := NewTrackingService(employees, &fakeHistoryRepo{}, &fakeNotifier{}, staticGeocoder{}, sse.NewHub(), fakeTx{}, stepClock)

	require.NoError(t, svc.EnforceOfficeHours(context.Background()))

	got, _ := employees.GetByID(context.Background(), "emp-1")
	assert.False(t, got.SharingEnabled)
}

func TestEnforceOfficeHours_EnablesActiveAtGateOpen(t *testing.T) {
	emp := sharingEmployee()
	emp.SharingEnabled = false
	inactive := employee.Employee{ID: "emp-2", Name: "Former Employee", Code: "OIDPL099", Active: false}
	employees := newFakeEmployeeRepo(emp, inactive)

	stepClock := &steppingClock{times: []time.Time{outsideOfficeHours(), insideOfficeHours()}}
	svc := NewTrackingService(employees, &fakeHistoryRepo{}, &fakeNotifier{}, staticGeocoder{}, sse.NewHub(), fakeTx{}, stepClock)

	require.NoError(t, svc.EnforceOfficeHours(context.Background()))

	active, _ := employees.GetByID(context.Background(), "emp-1")
	assert.True(t, active.SharingEnabled)

	former, _ := employees.GetByID(context.Background(), "emp-2")
	assert.False(t, former.SharingEnabled)
}

func TestEnforceOfficeHours_NudgesDeviceAtGateOpen(t *testing.T) {
	emp := sharingEmployee()
	emp.SharingEnabled = false
	employees := newFakeEmployeeRepo(emp)

	hub := sse.NewHub()
	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	stepClock := &steppingClock{times: []time.Time{outsideOfficeHours(), insideOfficeHours()}}
	svc := NewTrackingService(employees, &fakeHistoryRepo{}, &fakeNotifier{}, staticGeocoder{}, hub, fakeTx{}, stepClock)

	require.NoError(t, svc.EnforceOfficeHours(context.Background()))

	require.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, "sharing_enabled", ev.Event)
}

// steppingClock returns each configured time once, then repeats the last.
type steppingClock struct {
	times []time.Time
	idx   int
}

func (c *steppingClock) Now() time.Time {
	t := c.times[c.idx]
	if c.idx < len(c.times)-1 {
		c.idx++
	}
	return t
}

func TestPurgeExpiredHistory_DeletesOnlyPastRetention(t *testing.T) {
	now := insideOfficeHours()
	history := &fakeHistoryRepo{records: []tracking.HistoryRecord{
		{ID: "old", EmployeeID: "emp-1", Timestamp: now.Add(-tracking.RetentionPeriod - time.Hour)},
		{ID: "edge", EmployeeID: "emp-1", Timestamp: now.Add(-tracking.RetentionPeriod + time.Minute)},
		{ID: "fresh", EmployeeID: "emp-1", Timestamp: now.Add(-time.Hour)},
	}}
	svc := newService(newFakeEmployeeRepo(), history, &fakeNotifier{}, staticGeocoder{}, now)

	deleted, err := svc.PurgeExpiredHistory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), deleted)
	require.Len(t, history.records, 2)
	assert.Equal(t, "edge", history.records[0].ID)
	assert.Equal(t, "fresh", history.records[1].ID)
}

func TestDayReport_ComputesDistanceAndBounds(t *testing.T) {
	now := insideOfficeHours()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	history := &fakeHistoryRepo{records: []tracking.HistoryRecord{
		{ID: "a", EmployeeID: "emp-1", Latitude: 28.4595, Longitude: 77.0266, Timestamp: day.Add(11 * time.Hour)},
		{ID: "b", EmployeeID: "emp-1", Latitude: 28.4700, Longitude: 77.0300, Timestamp: day.Add(12 * time.Hour)},
		{ID: "other-day", EmployeeID: "emp-1", Latitude: 28.50, Longitude: 77.10, Timestamp: day.Add(30 * time.Hour)},
	}}
	svc := newService(newFakeEmployeeRepo(sharingEmployee()), history, &fakeNotifier{}, staticGeocoder{}, now)

	report, err := svc.DayReport(context.Background(), "emp-1", day)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SampleCount)
	assert.Equal(t, "2025-06-02", report.Date)
	// ~1.2km between the two points
	assert.InDelta(t, 1220, report.DistanceMeters, 100)
	require.NotNil(t, report.FirstSeenAt)
	require.NotNil(t, report.LastSeenAt)
	assert.Equal(t, day.Add(11*time.Hour), *report.FirstSeenAt)
	assert.Equal(t, day.Add(12*time.Hour), *report.LastSeenAt)
}
