package geofence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforceone/fieldops-backend-go/internal/domain/geofence"
	"github.com/workforceone/fieldops-backend-go/internal/domain/notification"
	"github.com/workforceone/fieldops-backend-go/internal/domain/user"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/sse"
)

type fakeUserRepo struct {
	supervisors    []user.User
	supervisorsErr error
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string, organizationID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByOrganization(ctx context.Context, organizationID string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListSupervisors(ctx context.Context, organizationID string) ([]user.User, error) {
	return f.supervisors, f.supervisorsErr
}

type fakeNotificationService struct {
	queued   []notification.CreateNotificationRequest
	queueErr error
}

func (f *fakeNotificationService) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return f.queueErr
}

func (f *fakeNotificationService) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, reqs...)
	return f.queueErr
}

func (f *fakeNotificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}

func (f *fakeNotificationService) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (f *fakeNotificationService) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	return nil
}

func (f *fakeNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeNotificationService) Stop() {}

func newTestService(userRepo user.UserRepository, sink notification.Service) *GeofenceServiceImpl {
	svc := NewGeofenceService(5*time.Minute, sse.NewHub(), sink, userRepo)
	return svc.(*GeofenceServiceImpl)
}

func TestProcessSample_InactiveMonitor(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakeNotificationService{})

	resp, err := svc.ProcessSample(context.Background(), "user-1", geofence.PositionSampleRequest{
		Latitude:  outsideLat,
		Longitude: 0,
	})

	require.NoError(t, err)
	assert.False(t, resp.Active)
	assert.False(t, resp.AlertFired)
}

func TestProcessSample_ActiveMonitorFires(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakeNotificationService{})
	svc.Activate("user-1", "org-1", testSite)

	resp, err := svc.ProcessSample(context.Background(), "user-1", geofence.PositionSampleRequest{
		Latitude:  outsideLat,
		Longitude: 0,
	})

	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.False(t, resp.InsideGeofence)
	assert.True(t, resp.AlertFired)
	assert.Equal(t, "Harbor Depot", resp.SiteName)
}

func TestProcessSample_RejectsInvalidCoordinates(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakeNotificationService{})

	_, err := svc.ProcessSample(context.Background(), "user-1", geofence.PositionSampleRequest{
		Latitude:  95,
		Longitude: 0,
	})

	assert.Error(t, err)
}

func TestDeactivate_Idempotent(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakeNotificationService{})
	svc.Activate("user-1", "org-1", testSite)

	svc.Deactivate("user-1")
	svc.Deactivate("user-1") // second call must be a no-op

	assert.False(t, svc.Status("user-1").Active)
}

func TestActivate_ResetsMonitorState(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakeNotificationService{})
	svc.Activate("user-1", "org-1", testSite)

	resp, err := svc.ProcessSample(context.Background(), "user-1", geofence.PositionSampleRequest{
		Latitude: outsideLat,
	})
	require.NoError(t, err)
	require.True(t, resp.AlertFired)

	// Re-activation replaces the monitor, discarding cooldown state: the
	// fresh monitor fires on its first exit again.
	svc.Activate("user-1", "org-1", testSite)
	resp, err = svc.ProcessSample(context.Background(), "user-1", geofence.PositionSampleRequest{
		Latitude: outsideLat,
	})
	require.NoError(t, err)
	assert.True(t, resp.AlertFired)
}

func TestNotifySupervisors_FanOut(t *testing.T) {
	sink := &fakeNotificationService{}
	repo := &fakeUserRepo{supervisors: []user.User{
		{ID: "sup-1", FullName: "Asha Odhiambo"},
		{ID: "sup-2", FullName: "Peter Kamau"},
	}}
	svc := newTestService(repo, sink)

	svc.notifySupervisors("user-1", "org-1", testSite, 150)

	require.Len(t, sink.queued, 2)
	assert.Equal(t, notification.TypeGeofenceBreach, sink.queued[0].Type)
	assert.Equal(t, "sup-1", sink.queued[0].RecipientID)
	assert.Contains(t, sink.queued[0].Message, "150m")
	assert.Contains(t, sink.queued[0].Message, "Harbor Depot")
}

func TestNotifySupervisors_SinkFailureSwallowed(t *testing.T) {
	sink := &fakeNotificationService{queueErr: errors.New("sink down")}
	repo := &fakeUserRepo{supervisors: []user.User{{ID: "sup-1"}}}
	svc := newTestService(repo, sink)

	// Must not panic or propagate; failures are logged and dropped.
	svc.notifySupervisors("user-1", "org-1", testSite, 150)

	assert.Len(t, sink.queued, 1)
}

func TestNotifySupervisors_LookupFailureSwallowed(t *testing.T) {
	sink := &fakeNotificationService{}
	repo := &fakeUserRepo{supervisorsErr: errors.New("db down")}
	svc := newTestService(repo, sink)

	svc.notifySupervisors("user-1", "org-1", testSite, 150)

	assert.Empty(t, sink.queued)
}
