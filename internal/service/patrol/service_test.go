package patrol

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforceone/fieldops-backend-go/internal/domain/patrol"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
)

func authedContext(userID, organizationID string) context.Context {
	tok := jwt.New()
	_ = tok.Set("user_id", userID)
	_ = tok.Set("organization_id", organizationID)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakePatrolRepo struct {
	patrols map[string]patrol.Patrol
	nextID  int
}

func newFakePatrolRepo() *fakePatrolRepo {
	return &fakePatrolRepo{patrols: make(map[string]patrol.Patrol)}
}

func (f *fakePatrolRepo) Create(ctx context.Context, p patrol.Patrol) (patrol.Patrol, error) {
	f.nextID++
	p.ID = fmt.Sprintf("patrol-%d", f.nextID)
	f.patrols[p.ID] = p
	return p, nil
}

func (f *fakePatrolRepo) GetByID(ctx context.Context, id string, organizationID string) (patrol.Patrol, error) {
	p, ok := f.patrols[id]
	if !ok || p.OrganizationID != organizationID {
		return patrol.Patrol{}, patrol.ErrPatrolNotFound
	}
	return p, nil
}

func (f *fakePatrolRepo) GetOpenByUser(ctx context.Context, userID string, organizationID string) (*patrol.Patrol, error) {
	for _, p := range f.patrols {
		if p.UserID == userID && p.OrganizationID == organizationID && !p.IsClosed() {
			open := p
			return &open, nil
		}
	}
	return nil, nil
}

func (f *fakePatrolRepo) List(ctx context.Context, filter patrol.PatrolFilter, organizationID string) ([]patrol.Patrol, int64, error) {
	var out []patrol.Patrol
	for _, p := range f.patrols {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePatrolRepo) Close(ctx context.Context, id string, organizationID string, status patrol.Status, endedAt time.Time, notes *string) (patrol.Patrol, error) {
	p, ok := f.patrols[id]
	if !ok || p.OrganizationID != organizationID || p.IsClosed() {
		return patrol.Patrol{}, patrol.ErrPatrolClosed
	}
	p.Status = status
	p.EndedAt = &endedAt
	if notes != nil {
		p.Notes = notes
	}
	f.patrols[id] = p
	return p, nil
}

func (f *fakePatrolRepo) CloseAbandoned(ctx context.Context, cutoff time.Time, endedAt time.Time) (int64, error) {
	var closed int64
	for id, p := range f.patrols {
		if !p.IsClosed() && p.StartedAt.Before(cutoff) {
			p.Status = patrol.StatusIncomplete
			p.EndedAt = &endedAt
			f.patrols[id] = p
			closed++
		}
	}
	return closed, nil
}

type fakePatrolLogRepo struct {
	logs   []patrol.PatrolLog
	nextID int
}

func (f *fakePatrolLogRepo) Append(ctx context.Context, log patrol.PatrolLog) (patrol.PatrolLog, error) {
	f.nextID++
	log.ID = fmt.Sprintf("log-%d", f.nextID)
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakePatrolLogRepo) ListByPatrol(ctx context.Context, patrolID string) ([]patrol.PatrolLog, error) {
	var out []patrol.PatrolLog
	for _, log := range f.logs {
		if log.PatrolID == patrolID {
			out = append(out, log)
		}
	}
	return out, nil
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

type fakeCheckpointRepo struct {
	checkpoints map[string]site.Checkpoint // keyed by QR code
}

func (f *fakeCheckpointRepo) Create(ctx context.Context, c site.Checkpoint) (site.Checkpoint, error) {
	return c, nil
}

func (f *fakeCheckpointRepo) GetByID(ctx context.Context, id string, organizationID string) (site.Checkpoint, error) {
	return site.Checkpoint{}, site.ErrCheckpointNotFound
}

func (f *fakeCheckpointRepo) GetByQRCode(ctx context.Context, qrCode string, organizationID string) (site.Checkpoint, error) {
	c, ok := f.checkpoints[qrCode]
	if !ok || c.OrganizationID != organizationID {
		return site.Checkpoint{}, site.ErrCheckpointNotFound
	}
	return c, nil
}

func (f *fakeCheckpointRepo) ListBySite(ctx context.Context, siteID string, organizationID string) ([]site.Checkpoint, error) {
	return nil, nil
}

func (f *fakeCheckpointRepo) SetActive(ctx context.Context, id string, organizationID string, active bool) error {
	return nil
}

func newTestService() (patrol.PatrolService, *fakePatrolRepo, *fakePatrolLogRepo) {
	patrolRepo := newFakePatrolRepo()
	logRepo := &fakePatrolLogRepo{}
	siteRepo := &fakeSiteRepo{sites: map[string]site.Site{
		"site-1": {ID: "site-1", OrganizationID: "org-1", Name: "Harbor Depot"},
		"site-2": {ID: "site-2", OrganizationID: "org-1", Name: "North Yard"},
	}}
	checkpointRepo := &fakeCheckpointRepo{checkpoints: map[string]site.Checkpoint{
		"qr-gate":  {ID: "cp-1", SiteID: "site-1", OrganizationID: "org-1", Name: "Main Gate"},
		"qr-dock":  {ID: "cp-2", SiteID: "site-1", OrganizationID: "org-1", Name: "Dock"},
		"qr-roof":  {ID: "cp-3", SiteID: "site-1", OrganizationID: "org-1", Name: "Roof Access"},
		"qr-north": {ID: "cp-9", SiteID: "site-2", OrganizationID: "org-1", Name: "North Gate"},
	}}
	svc := NewPatrolService(patrolRepo, logRepo, siteRepo, checkpointRepo)
	return svc, patrolRepo, logRepo
}

func TestStartPatrol(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	resp, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})

	require.NoError(t, err)
	assert.Equal(t, string(patrol.StatusStarted), resp.Status)
	assert.Equal(t, "ongoing", resp.Duration)
	require.NotNil(t, resp.SiteName)
	assert.Equal(t, "Harbor Depot", *resp.SiteName)
}

func TestStartPatrol_SecondOpenRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	_, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})
	require.NoError(t, err)

	_, err = svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-2"})
	assert.ErrorIs(t, err, patrol.ErrPatrolAlreadyOpen)
}

func TestStartPatrol_UnknownSite(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	_, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-404"})

	assert.ErrorIs(t, err, site.ErrSiteNotFound)
}

func TestRecordScan_TimelinePreserved(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	started, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})
	require.NoError(t, err)

	for _, qr := range []string{"qr-gate", "qr-dock", "qr-roof"} {
		_, err := svc.RecordScan(ctx, patrol.RecordScanRequest{PatrolID: started.ID, QRCode: qr})
		require.NoError(t, err)
	}

	detail, err := svc.GetPatrol(ctx, started.ID)
	require.NoError(t, err)
	require.Len(t, detail.Logs, 3)
	assert.Equal(t, "cp-1", detail.Logs[0].CheckpointID)
	assert.Equal(t, "cp-2", detail.Logs[1].CheckpointID)
	assert.Equal(t, "cp-3", detail.Logs[2].CheckpointID)
}

func TestRecordScan_ClosedPatrolConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	started, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})
	require.NoError(t, err)

	// First scans land, then the patrol is closed out.
	for _, qr := range []string{"qr-gate", "qr-dock", "qr-roof"} {
		_, err := svc.RecordScan(ctx, patrol.RecordScanRequest{PatrolID: started.ID, QRCode: qr})
		require.NoError(t, err)
	}
	_, err = svc.EndPatrol(ctx, started.ID, patrol.EndPatrolRequest{})
	require.NoError(t, err)

	_, err = svc.RecordScan(ctx, patrol.RecordScanRequest{PatrolID: started.ID, QRCode: "qr-gate"})
	assert.ErrorIs(t, err, patrol.ErrPatrolClosed)

	// The earlier scans stay retrievable in scan order.
	detail, err := svc.GetPatrol(ctx, started.ID)
	require.NoError(t, err)
	require.Len(t, detail.Logs, 3)
	assert.Equal(t, "cp-1", detail.Logs[0].CheckpointID)
}

func TestRecordScan_CheckpointFromOtherSite(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	started, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})
	require.NoError(t, err)

	_, err = svc.RecordScan(ctx, patrol.RecordScanRequest{PatrolID: started.ID, QRCode: "qr-north"})
	assert.ErrorIs(t, err, patrol.ErrCheckpointSiteMismatch)
}

func TestRecordScan_StaleQRCode(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	started, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})
	require.NoError(t, err)

	_, err = svc.RecordScan(ctx, patrol.RecordScanRequest{PatrolID: started.ID, QRCode: "qr-gone"})
	assert.ErrorIs(t, err, site.ErrCheckpointNotFound)
}

func TestRecordScan_IssueReportedDoesNotClosePatrol(t *testing.T) {
	svc, patrolRepo, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	started, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})
	require.NoError(t, err)

	log, err := svc.RecordScan(ctx, patrol.RecordScanRequest{
		PatrolID: started.ID,
		QRCode:   "qr-gate",
		Status:   string(patrol.LogStatusIssueReported),
	})
	require.NoError(t, err)
	assert.Equal(t, string(patrol.LogStatusIssueReported), log.Status)

	stored, err := patrolRepo.GetByID(ctx, started.ID, "org-1")
	require.NoError(t, err)
	assert.Equal(t, patrol.StatusStarted, stored.Status)
}

func TestEndPatrol_DefaultsToCompleted(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	started, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})
	require.NoError(t, err)

	ended, err := svc.EndPatrol(ctx, started.ID, patrol.EndPatrolRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(patrol.StatusCompleted), ended.Status)
	assert.NotNil(t, ended.EndedAt)
	assert.NotEqual(t, "ongoing", ended.Duration)
}

func TestEndPatrol_AlreadyClosed(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := authedContext("guard-1", "org-1")

	started, err := svc.StartPatrol(ctx, patrol.StartPatrolRequest{SiteID: "site-1"})
	require.NoError(t, err)

	_, err = svc.EndPatrol(ctx, started.ID, patrol.EndPatrolRequest{})
	require.NoError(t, err)

	_, err = svc.EndPatrol(ctx, started.ID, patrol.EndPatrolRequest{Outcome: string(patrol.StatusIncomplete)})
	assert.ErrorIs(t, err, patrol.ErrPatrolClosed)
}

func TestToPatrolResponse_Duration(t *testing.T) {
	startedAt := time.Date(2026, 3, 18, 22, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(47 * time.Minute)

	resp := toPatrolResponse(patrol.Patrol{
		ID:        "patrol-1",
		Status:    patrol.StatusCompleted,
		StartedAt: startedAt,
		EndedAt:   &endedAt,
	})

	assert.Equal(t, "47 mins", resp.Duration)
}
