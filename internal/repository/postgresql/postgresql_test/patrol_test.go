package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforceone/fieldops-backend-go/internal/domain/patrol"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/database"
	"github.com/workforceone/fieldops-backend-go/internal/repository/postgresql"
)

func repoTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func truncatePatrolTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	for _, table := range []string{"patrol_logs", "patrols", "checkpoints", "sites", "users", "organizations"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func seedOrganization(t *testing.T, ctx context.Context, db *database.DB) string {
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO organizations (name, slug)
		VALUES ('Sentinel Security', 'sentinel')
		RETURNING id
	`).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedGuard(t *testing.T, ctx context.Context, db *database.DB, organizationID string) string {
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO users (organization_id, email, password_hash, full_name, role, is_active)
		VALUES ($1, 'guard@example.com', 'x', 'Asha Odhiambo', 'guard', TRUE)
		RETURNING id
	`, organizationID).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedSite(t *testing.T, ctx context.Context, db *database.DB, organizationID string) string {
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO sites (organization_id, name, latitude, longitude, radius_meters)
		VALUES ($1, 'Harbor Depot', -1.286389, 36.817223, 150)
		RETURNING id
	`, organizationID).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedCheckpoint(t *testing.T, ctx context.Context, db *database.DB, organizationID, siteID, name string, order int) string {
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO checkpoints (organization_id, site_id, name, qr_code, "order", is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`, organizationID, siteID, name, fmt.Sprintf("qr-token-%s-%d", name, order), order).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestPatrolRepository_LifecycleRoundTrip(t *testing.T) {
	db := repoTestDB(t)
	ctx := context.Background()
	truncatePatrolTables(t, ctx, db)

	orgID := seedOrganization(t, ctx, db)
	guardID := seedGuard(t, ctx, db, orgID)
	siteID := seedSite(t, ctx, db, orgID)

	repo := postgresql.NewPatrolRepository(db)

	created, err := repo.Create(ctx, patrol.Patrol{
		OrganizationID: orgID,
		SiteID:         siteID,
		UserID:         guardID,
		Status:         patrol.StatusStarted,
		StartedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	open, err := repo.GetOpenByUser(ctx, guardID, orgID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, created.ID, open.ID)

	closed, err := repo.Close(ctx, created.ID, orgID, patrol.StatusCompleted, time.Now().UTC(), nil)
	require.NoError(t, err)
	assert.Equal(t, patrol.StatusCompleted, closed.Status)
	require.NotNil(t, closed.EndedAt)

	// Closing again conflicts: the row is no longer in 'started'.
	_, err = repo.Close(ctx, created.ID, orgID, patrol.StatusCompleted, time.Now().UTC(), nil)
	assert.ErrorIs(t, err, patrol.ErrPatrolClosed)

	open, err = repo.GetOpenByUser(ctx, guardID, orgID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestPatrolRepository_CrossTenantHidden(t *testing.T) {
	db := repoTestDB(t)
	ctx := context.Background()
	truncatePatrolTables(t, ctx, db)

	orgID := seedOrganization(t, ctx, db)
	guardID := seedGuard(t, ctx, db, orgID)
	siteID := seedSite(t, ctx, db, orgID)

	var otherOrgID string
	err := db.QueryRow(ctx, `
		INSERT INTO organizations (name, slug)
		VALUES ('Other Org', 'other-org')
		RETURNING id
	`).Scan(&otherOrgID)
	require.NoError(t, err)

	repo := postgresql.NewPatrolRepository(db)

	created, err := repo.Create(ctx, patrol.Patrol{
		OrganizationID: orgID,
		SiteID:         siteID,
		UserID:         guardID,
		Status:         patrol.StatusStarted,
		StartedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID, otherOrgID)
	assert.ErrorIs(t, err, patrol.ErrPatrolNotFound)
}

func TestPatrolRepository_CloseAbandoned(t *testing.T) {
	db := repoTestDB(t)
	ctx := context.Background()
	truncatePatrolTables(t, ctx, db)

	orgID := seedOrganization(t, ctx, db)
	guardID := seedGuard(t, ctx, db, orgID)
	siteID := seedSite(t, ctx, db, orgID)

	repo := postgresql.NewPatrolRepository(db)

	stale, err := repo.Create(ctx, patrol.Patrol{
		OrganizationID: orgID,
		SiteID:         siteID,
		UserID:         guardID,
		Status:         patrol.StatusStarted,
		StartedAt:      time.Now().UTC().Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	fresh, err := repo.Create(ctx, patrol.Patrol{
		OrganizationID: orgID,
		SiteID:         siteID,
		UserID:         guardID,
		Status:         patrol.StatusStarted,
		StartedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)

	closed, err := repo.CloseAbandoned(ctx, time.Now().UTC().Add(-12*time.Hour), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	staleAfter, err := repo.GetByID(ctx, stale.ID, orgID)
	require.NoError(t, err)
	assert.Equal(t, patrol.StatusIncomplete, staleAfter.Status)

	freshAfter, err := repo.GetByID(ctx, fresh.ID, orgID)
	require.NoError(t, err)
	assert.Equal(t, patrol.StatusStarted, freshAfter.Status)
}

func TestPatrolLogRepository_AppendPreservesScanOrder(t *testing.T) {
	db := repoTestDB(t)
	ctx := context.Background()
	truncatePatrolTables(t, ctx, db)

	orgID := seedOrganization(t, ctx, db)
	guardID := seedGuard(t, ctx, db, orgID)
	siteID := seedSite(t, ctx, db, orgID)

	patrolRepo := postgresql.NewPatrolRepository(db)
	logRepo := postgresql.NewPatrolLogRepository(db)

	p, err := patrolRepo.Create(ctx, patrol.Patrol{
		OrganizationID: orgID,
		SiteID:         siteID,
		UserID:         guardID,
		Status:         patrol.StatusStarted,
		StartedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)

	base := time.Now().UTC().Add(-time.Hour)
	var checkpointIDs []string
	for i := 1; i <= 3; i++ {
		checkpointIDs = append(checkpointIDs, seedCheckpoint(t, ctx, db, orgID, siteID, fmt.Sprintf("Gate %d", i), i))
	}

	// Append out of insertion-time order; listing must follow scanned_at.
	for _, i := range []int{1, 0, 2} {
		_, err := logRepo.Append(ctx, patrol.PatrolLog{
			PatrolID:     p.ID,
			CheckpointID: checkpointIDs[i],
			Status:       patrol.LogStatusScanned,
			ScannedAt:    base.Add(time.Duration(i) * 10 * time.Minute),
		})
		require.NoError(t, err)
	}

	logs, err := logRepo.ListByPatrol(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, checkpointIDs[i], logs[i].CheckpointID)
	}
}
