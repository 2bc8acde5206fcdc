package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/database"
)

type checkpointRepository struct {
	db *database.DB
}

func NewCheckpointRepository(db *database.DB) site.CheckpointRepository {
	return &checkpointRepository{db: db}
}

// Create implements site.CheckpointRepository.
func (r *checkpointRepository) Create(ctx context.Context, c site.Checkpoint) (site.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO checkpoints (site_id, organization_id, name, qr_code, "order", is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.SiteID,
		c.OrganizationID,
		c.Name,
		c.QRCode,
		c.Order,
		c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return site.Checkpoint{}, site.ErrQRCodeExists
		}
		return site.Checkpoint{}, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	return c, nil
}

// GetByID implements site.CheckpointRepository.
func (r *checkpointRepository) GetByID(ctx context.Context, id string, organizationID string) (site.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, site_id, organization_id, name, qr_code, "order", is_active, created_at, updated_at
		FROM checkpoints
		WHERE id = $1 AND organization_id = $2
	`

	var c site.Checkpoint
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&c.ID, &c.SiteID, &c.OrganizationID, &c.Name, &c.QRCode,
		&c.Order, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return site.Checkpoint{}, site.ErrCheckpointNotFound
		}
		return site.Checkpoint{}, fmt.Errorf("failed to get checkpoint by ID: %w", err)
	}

	return c, nil
}

// GetByQRCode implements site.CheckpointRepository.
func (r *checkpointRepository) GetByQRCode(ctx context.Context, qrCode string, organizationID string) (site.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, site_id, organization_id, name, qr_code, "order", is_active, created_at, updated_at
		FROM checkpoints
		WHERE qr_code = $1 AND organization_id = $2
	`

	var c site.Checkpoint
	err := q.QueryRow(ctx, query, qrCode, organizationID).Scan(
		&c.ID, &c.SiteID, &c.OrganizationID, &c.Name, &c.QRCode,
		&c.Order, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return site.Checkpoint{}, site.ErrCheckpointNotFound
		}
		return site.Checkpoint{}, fmt.Errorf("failed to get checkpoint by qr code: %w", err)
	}

	return c, nil
}

// ListBySite implements site.CheckpointRepository.
func (r *checkpointRepository) ListBySite(ctx context.Context, siteID string, organizationID string) ([]site.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, site_id, organization_id, name, qr_code, "order", is_active, created_at, updated_at
		FROM checkpoints
		WHERE site_id = $1 AND organization_id = $2
		ORDER BY "order" ASC, name ASC
	`

	rows, err := q.Query(ctx, query, siteID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var checkpoints []site.Checkpoint
	for rows.Next() {
		var c site.Checkpoint
		if err := rows.Scan(
			&c.ID, &c.SiteID, &c.OrganizationID, &c.Name, &c.QRCode,
			&c.Order, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		checkpoints = append(checkpoints, c)
	}

	return checkpoints, rows.Err()
}

// SetActive implements site.CheckpointRepository.
func (r *checkpointRepository) SetActive(ctx context.Context, id string, organizationID string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE checkpoints
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3
	`

	tag, err := q.Exec(ctx, query, active, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to set checkpoint active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrCheckpointNotFound
	}

	return nil
}
