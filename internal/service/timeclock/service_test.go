package timeclock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforceone/fieldops-backend-go/internal/domain/geofence"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
	"github.com/workforceone/fieldops-backend-go/internal/domain/timeclock"
)

func authedContext(userID, organizationID string) context.Context {
	tok := jwt.New()
	_ = tok.Set("user_id", userID)
	_ = tok.Set("organization_id", organizationID)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeTimeEntryRepo struct {
	entries map[string]timeclock.TimeEntry
	nextID  int
}

func newFakeTimeEntryRepo() *fakeTimeEntryRepo {
	return &fakeTimeEntryRepo{entries: make(map[string]timeclock.TimeEntry)}
}

func (f *fakeTimeEntryRepo) Create(ctx context.Context, e timeclock.TimeEntry) (timeclock.TimeEntry, error) {
	f.nextID++
	e.ID = fmt.Sprintf("entry-%d", f.nextID)
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeTimeEntryRepo) GetByID(ctx context.Context, id string, organizationID string) (timeclock.TimeEntry, error) {
	e, ok := f.entries[id]
	if !ok || e.OrganizationID != organizationID {
		return timeclock.TimeEntry{}, timeclock.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeTimeEntryRepo) GetOpenByUser(ctx context.Context, userID string, organizationID string) (*timeclock.TimeEntry, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.OrganizationID == organizationID && e.IsOpen() {
			open := e
			return &open, nil
		}
	}
	return nil, nil
}

func (f *fakeTimeEntryRepo) CloseEntry(ctx context.Context, id string, organizationID string, clockOut time.Time, durationMinutes int, notes *string) (timeclock.TimeEntry, error) {
	e, ok := f.entries[id]
	if !ok || e.OrganizationID != organizationID || !e.IsOpen() {
		return timeclock.TimeEntry{}, timeclock.ErrEntryNotFound
	}
	e.ClockOut = &clockOut
	e.DurationMinutes = &durationMinutes
	if notes != nil {
		e.Notes = notes
	}
	f.entries[id] = e
	return e, nil
}

func (f *fakeTimeEntryRepo) List(ctx context.Context, filter timeclock.TimeEntryFilter, organizationID string) ([]timeclock.TimeEntry, int64, error) {
	var out []timeclock.TimeEntry
	for _, e := range f.entries {
		if e.OrganizationID == organizationID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimeEntryRepo) ListWindow(ctx context.Context, organizationID string, since time.Time) ([]timeclock.TimeEntry, error) {
	return nil, nil
}

type fakeSiteRepo struct {
	sites map[string]site.Site
}

func (f *fakeSiteRepo) Create(ctx context.Context, s site.Site) (site.Site, error) { return s, nil }

func (f *fakeSiteRepo) GetByID(ctx context.Context, id string, organizationID string) (site.Site, error) {
	s, ok := f.sites[id]
	if !ok || s.OrganizationID != organizationID {
		return site.Site{}, site.ErrSiteNotFound
	}
	return s, nil
}

func (f *fakeSiteRepo) List(ctx context.Context, organizationID string) ([]site.Site, error) {
	return nil, nil
}

func (f *fakeSiteRepo) Update(ctx context.Context, s site.Site) error { return nil }

func (f *fakeSiteRepo) Delete(ctx context.Context, id string, organizationID string) error {
	return nil
}

type fakeGeofenceService struct {
	activated   []string
	deactivated []string
}

func (f *fakeGeofenceService) Activate(userID string, organizationID string, s site.Site) {
	f.activated = append(f.activated, userID)
}

func (f *fakeGeofenceService) Deactivate(userID string) {
	f.deactivated = append(f.deactivated, userID)
}

func (f *fakeGeofenceService) ProcessSample(ctx context.Context, userID string, req geofence.PositionSampleRequest) (geofence.SampleResponse, error) {
	return geofence.SampleResponse{}, nil
}

func (f *fakeGeofenceService) Status(userID string) geofence.StatusResponse {
	return geofence.StatusResponse{}
}

func newTestService() (timeclock.TimeclockService, *fakeTimeEntryRepo, *fakeGeofenceService) {
	repo := newFakeTimeEntryRepo()
	geo := &fakeGeofenceService{}
	sites := &fakeSiteRepo{sites: map[string]site.Site{
		"site-1": {ID: "site-1", OrganizationID: "org-1", Name: "Harbor Depot", RadiusMeters: 100},
	}}
	return NewTimeclockService(repo, sites, geo), repo, geo
}

func TestClockIn(t *testing.T) {
	svc, _, geo := newTestService()
	ctx := authedContext("guard-1", "org-1")
	siteID := "site-1"

	resp, err := svc.ClockIn(ctx, timeclock.ClockInRequest{SiteID: &siteID})

	require.NoError(t, err)
	assert.Nil(t, resp.ClockOut)
	assert.Nil(t, resp.DurationMinutes)
	assert.Equal(t, []string{"guard-1"}, geo.activated)
}

func TestClockIn_WithoutSiteSkipsGeofence(t *testing.T) {
	svc, _, geo := newTestService()
	ctx := authedContext("guard-1", "org-1")

	_, err := svc.ClockIn(ctx, timeclock.ClockInRequest{})

	require.NoError(t, err)
	assert.Empty(t, geo.activated)
}

func TestClockIn_OpenEntryRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	_, err := svc.ClockIn(ctx, timeclock.ClockInRequest{})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, timeclock.ClockInRequest{})
	assert.ErrorIs(t, err, timeclock.ErrAlreadyClockedIn)
}

func TestClockIn_UnknownSite(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")
	siteID := "site-404"

	_, err := svc.ClockIn(ctx, timeclock.ClockInRequest{SiteID: &siteID})

	assert.ErrorIs(t, err, site.ErrSiteNotFound)
}

func TestClockOut(t *testing.T) {
	svc, repo, geo := newTestService()
	ctx := authedContext("guard-1", "org-1")

	clockedIn, err := svc.ClockIn(ctx, timeclock.ClockInRequest{})
	require.NoError(t, err)

	resp, err := svc.ClockOut(ctx, timeclock.ClockOutRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.ClockOut)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, []string{"guard-1"}, geo.deactivated)

	// The stored duration is fixed.
	stored, err := repo.GetByID(ctx, clockedIn.ID, "org-1")
	require.NoError(t, err)
	assert.False(t, stored.IsOpen())
	assert.NotNil(t, stored.DurationMinutes)
}

func TestClockOut_NotClockedIn(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	_, err := svc.ClockOut(ctx, timeclock.ClockOutRequest{})

	assert.ErrorIs(t, err, timeclock.ErrNotClockedIn)
}
