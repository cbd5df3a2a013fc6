package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/domain/notification"
	"github.com/oidpl/workforce-backend-go/internal/pkg/clock"
	"github.com/oidpl/workforce-backend-go/internal/pkg/push"
	"github.com/oidpl/workforce-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	notifications map[string]*notification.Notification
	read          map[string]bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: make(map[string]*notification.Notification),
		read:          make(map[string]bool),
	}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	f.notifications[n.ID] = &n
	return n, nil
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	for i := range ns {
		n := ns[i]
		f.notifications[n.ID] = &n
	}
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotificationNotFound
	}
	return *n, nil
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	f.read[id] = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	for id, n := range f.notifications {
		if n.RecipientID == recipientID {
			f.read[id] = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	count := 0
	for id, n := range f.notifications {
		if n.RecipientID == recipientID && !f.read[id] {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkActionedByLeave(ctx context.Context, leaveID string, status notification.ActionStatus, actionBy string, actionAt time.Time) error {
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	delete(f.notifications, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}
func (f *fakeEmployeeRepo) GetByMobile(ctx context.Context, mobile string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) List(ctx context.Context, limit int) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return nil
}
func (f *fakeEmployeeRepo) UpdateProfileImage(ctx context.Context, id, path string) error {
	return nil
}
func (f *fakeEmployeeRepo) UpdatePushToken(ctx context.Context, id string, token *string) error {
	return nil
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEmployeeRepo) SetSharing(ctx context.Context, id string, enabled bool) error {
	return nil
}
func (f *fakeEmployeeRepo) SetLocation(ctx context.Context, id string, lat, lon float64, address string, ts time.Time) error {
	return nil
}
func (f *fakeEmployeeRepo) ListSharingEnabled(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type recordingPush struct {
	sent []push.Message
	err  error
}

func (r *recordingPush) Send(ctx context.Context, msg push.Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

type notifFixture struct {
	svc    notification.NotificationService
	repo   *fakeNotificationRepo
	hub    *sse.Hub
	pusher *recordingPush
}

func newNotifFixture(emps ...employee.Employee) *notifFixture {
	repo := newFakeNotificationRepo()
	hub := sse.NewHub()
	pusher := &recordingPush{}
	employees := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		employees.employees[e.ID] = e
	}

	svc := NewNotificationService(
		repo, employees, hub, pusher,
		clock.Fixed(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)),
	)
	return &notifFixture{svc: svc, repo: repo, hub: hub, pusher: pusher}
}

func TestNotify_PersistsAndPublishes(t *testing.T) {
	fx := newNotifFixture()

	ch, cleanup := fx.hub.Subscribe("emp-1")
	defer cleanup()

	created, err := fx.svc.Notify(context.Background(), notification.Notification{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveApproved,
		Title:       "Leave approved",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, notification.StatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	_, stored := fx.repo.notifications[created.ID]
	assert.True(t, stored)

	require.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, "notification", ev.Event)
}

func TestNotify_PushesToRegisteredDevice(t *testing.T) {
	token := "ExponentPushToken[abc]"
	fx := newNotifFixture(employee.Employee{ID: "emp-1", Name: "Asha Verma", PushToken: &token})

	_, err := fx.svc.Notify(context.Background(), notification.Notification{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveApproved,
		Title:       "Leave approved",
		Body:        "Your leave was approved",
	})
	require.NoError(t, err)

	require.Len(t, fx.pusher.sent, 1)
	assert.Equal(t, token, fx.pusher.sent[0].Token)
	assert.Equal(t, "default", fx.pusher.sent[0].ChannelID)
}

func TestNotify_NoPushWithoutToken(t *testing.T) {
	fx := newNotifFixture(employee.Employee{ID: "emp-1", Name: "Asha Verma"})

	_, err := fx.svc.Notify(context.Background(), notification.Notification{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveApproved,
	})
	require.NoError(t, err)
	assert.Empty(t, fx.pusher.sent)
}

func TestNotify_PushFailureIsSwallowed(t *testing.T) {
	token := "ExponentPushToken[abc]"
	fx := newNotifFixture(employee.Employee{ID: "emp-1", PushToken: &token})
	fx.pusher.err = errors.New("expo unreachable")

	created, err := fx.svc.Notify(context.Background(), notification.Notification{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveApproved,
	})
	require.NoError(t, err)

	_, stored := fx.repo.notifications[created.ID]
	assert.True(t, stored)
}

func TestListForRecipient_HidesOwnLeaveRequestCopies(t *testing.T) {
	fx := newNotifFixture()
	ctx := context.Background()

	// emp-1 applied; emp-1 also manages others and holds a foreign copy
	require.NoError(t, fx.svc.NotifyMany(ctx, []notification.Notification{
		{
			RecipientID: "emp-1",
			Type:        notification.TypeLeaveRequest,
			LeaveID:     "leave-own",
			Data:        map[string]interface{}{"employee_id": "emp-1"},
		},
		{
			RecipientID: "emp-1",
			Type:        notification.TypeLeaveRequest,
			LeaveID:     "leave-other",
			Data:        map[string]interface{}{"employee_id": "emp-2"},
		},
		{
			RecipientID: "emp-1",
			Type:        notification.TypeLeaveApproved,
			LeaveID:     "leave-own",
		},
	}))

	feed, err := fx.svc.ListForRecipient(ctx, "emp-1")
	require.NoError(t, err)

	require.Len(t, feed, 2)
	for _, n := range feed {
		if n.Type == notification.TypeLeaveRequest {
			assert.Equal(t, "leave-other", n.LeaveID)
		}
	}
}

func TestMarkRead_OwnershipEnforced(t *testing.T) {
	fx := newNotifFixture()
	ctx := context.Background()

	created, err := fx.svc.Notify(ctx, notification.Notification{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveApproved,
	})
	require.NoError(t, err)

	err = fx.svc.MarkRead(ctx, "emp-2", created.ID)
	assert.ErrorIs(t, err, notification.ErrNotificationNotOwned)

	require.NoError(t, fx.svc.MarkRead(ctx, "emp-1", created.ID))
	assert.True(t, fx.repo.read[created.ID])
}

func TestDelete_OwnershipEnforced(t *testing.T) {
	fx := newNotifFixture()
	ctx := context.Background()

	created, err := fx.svc.Notify(ctx, notification.Notification{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveApproved,
	})
	require.NoError(t, err)

	err = fx.svc.Delete(ctx, "emp-2", created.ID)
	assert.ErrorIs(t, err, notification.ErrNotificationNotOwned)
	_, stillThere := fx.repo.notifications[created.ID]
	assert.True(t, stillThere)

	require.NoError(t, fx.svc.Delete(ctx, "emp-1", created.ID))
	_, stillThere = fx.repo.notifications[created.ID]
	assert.False(t, stillThere)
}
