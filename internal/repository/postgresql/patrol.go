package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/patrol"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/database"
)

type patrolRepository struct {
	db *database.DB
}

func NewPatrolRepository(db *database.DB) patrol.PatrolRepository {
	return &patrolRepository{db: db}
}

// Create implements patrol.PatrolRepository.
func (r *patrolRepository) Create(ctx context.Context, p patrol.Patrol) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patrols (organization_id, site_id, user_id, status, started_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.OrganizationID,
		p.SiteID,
		p.UserID,
		string(p.Status),
		p.StartedAt,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return patrol.Patrol{}, fmt.Errorf("failed to create patrol: %w", err)
	}

	return p, nil
}

// GetByID implements patrol.PatrolRepository.
func (r *patrolRepository) GetByID(ctx context.Context, id string, organizationID string) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.organization_id, p.site_id, p.user_id, p.status,
			   p.started_at, p.ended_at, p.notes, p.created_at, p.updated_at,
			   s.name AS site_name,
			   u.full_name AS user_name
		FROM patrols p
		LEFT JOIN sites s ON s.id = p.site_id
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1 AND p.organization_id = $2
	`

	var p patrol.Patrol
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&p.ID, &p.OrganizationID, &p.SiteID, &p.UserID, &p.Status,
		&p.StartedAt, &p.EndedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		&p.SiteName, &p.UserName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return patrol.Patrol{}, patrol.ErrPatrolNotFound
		}
		return patrol.Patrol{}, fmt.Errorf("failed to get patrol by ID: %w", err)
	}

	return p, nil
}

// GetOpenByUser implements patrol.PatrolRepository.
func (r *patrolRepository) GetOpenByUser(ctx context.Context, userID string, organizationID string) (*patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, site_id, user_id, status, started_at, ended_at, notes, created_at, updated_at
		FROM patrols
		WHERE user_id = $1
		  AND organization_id = $2
		  AND status = 'started'
		ORDER BY started_at DESC
		LIMIT 1
	`

	var p patrol.Patrol
	err := q.QueryRow(ctx, query, userID, organizationID).Scan(
		&p.ID, &p.OrganizationID, &p.SiteID, &p.UserID, &p.Status,
		&p.StartedAt, &p.EndedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No open patrol
		}
		return nil, fmt.Errorf("failed to get open patrol: %w", err)
	}

	return &p, nil
}

// List implements patrol.PatrolRepository.
func (r *patrolRepository) List(ctx context.Context, filter patrol.PatrolFilter, organizationID string) ([]patrol.Patrol, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "p.organization_id = $1"
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.SiteID != nil && *filter.SiteID != "" {
		baseWhere += fmt.Sprintf(" AND p.site_id = $%d", argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND p.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM patrols p WHERE " + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patrols: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT p.id, p.organization_id, p.site_id, p.user_id, p.status,
			   p.started_at, p.ended_at, p.notes, p.created_at, p.updated_at,
			   s.name AS site_name,
			   u.full_name AS user_name
		FROM patrols p
		LEFT JOIN sites s ON s.id = p.site_id
		LEFT JOIN users u ON u.id = p.user_id
		WHERE %s
		ORDER BY p.started_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patrols: %w", err)
	}
	defer rows.Close()

	var patrols []patrol.Patrol
	for rows.Next() {
		var p patrol.Patrol
		if err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.SiteID, &p.UserID, &p.Status,
			&p.StartedAt, &p.EndedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
			&p.SiteName, &p.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan patrol: %w", err)
		}
		patrols = append(patrols, p)
	}

	return patrols, total, rows.Err()
}

// Close implements patrol.PatrolRepository.
func (r *patrolRepository) Close(ctx context.Context, id string, organizationID string, status patrol.Status, endedAt time.Time, notes *string) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE patrols
		SET status = $1, ended_at = $2, notes = COALESCE($3, notes), updated_at = NOW()
		WHERE id = $4 AND organization_id = $5 AND status = 'started'
		RETURNING id, organization_id, site_id, user_id, status, started_at, ended_at, notes, created_at, updated_at
	`

	var p patrol.Patrol
	err := q.QueryRow(ctx, query, string(status), endedAt, notes, id, organizationID).Scan(
		&p.ID, &p.OrganizationID, &p.SiteID, &p.UserID, &p.Status,
		&p.StartedAt, &p.EndedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return patrol.Patrol{}, patrol.ErrPatrolClosed
		}
		return patrol.Patrol{}, fmt.Errorf("failed to close patrol: %w", err)
	}

	return p, nil
}

// CloseAbandoned implements patrol.PatrolRepository.
func (r *patrolRepository) CloseAbandoned(ctx context.Context, cutoff time.Time, endedAt time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE patrols
		SET status = 'incomplete', ended_at = $1, updated_at = NOW()
		WHERE status = 'started' AND started_at < $2
	`

	tag, err := q.Exec(ctx, query, endedAt, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to close abandoned patrols: %w", err)
	}

	return tag.RowsAffected(), nil
}
