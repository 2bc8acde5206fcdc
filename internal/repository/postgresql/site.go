package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/database"
)

type siteRepository struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepository{db: db}
}

// Create implements site.SiteRepository.
func (r *siteRepository) Create(ctx context.Context, s site.Site) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sites (organization_id, name, address, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.OrganizationID,
		s.Name,
		s.Address,
		s.Latitude,
		s.Longitude,
		s.RadiusMeters,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return site.Site{}, fmt.Errorf("failed to create site: %w", err)
	}

	return s, nil
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string, organizationID string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, address, latitude, longitude, radius_meters, created_at, updated_at
		FROM sites
		WHERE id = $1 AND organization_id = $2
	`

	var s site.Site
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&s.ID, &s.OrganizationID, &s.Name, &s.Address,
		&s.Latitude, &s.Longitude, &s.RadiusMeters,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site by ID: %w", err)
	}

	return s, nil
}

// List implements site.SiteRepository.
func (r *siteRepository) List(ctx context.Context, organizationID string) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, address, latitude, longitude, radius_meters, created_at, updated_at
		FROM sites
		WHERE organization_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []site.Site
	for rows.Next() {
		var s site.Site
		if err := rows.Scan(
			&s.ID, &s.OrganizationID, &s.Name, &s.Address,
			&s.Latitude, &s.Longitude, &s.RadiusMeters,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, s)
	}

	return sites, rows.Err()
}

// Update implements site.SiteRepository.
func (r *siteRepository) Update(ctx context.Context, s site.Site) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites
		SET name = $1, address = $2, latitude = $3, longitude = $4, radius_meters = $5, updated_at = NOW()
		WHERE id = $6 AND organization_id = $7
	`

	tag, err := q.Exec(ctx, query, s.Name, s.Address, s.Latitude, s.Longitude, s.RadiusMeters, s.ID, s.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to update site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}

// Delete implements site.SiteRepository.
func (r *siteRepository) Delete(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sites WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}
