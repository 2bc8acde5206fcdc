package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/incident"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/database"
)

type incidentRepository struct {
	db *database.DB
}

func NewIncidentRepository(db *database.DB) incident.IncidentRepository {
	return &incidentRepository{db: db}
}

// Create implements incident.IncidentRepository.
func (r *incidentRepository) Create(ctx context.Context, i incident.Incident) (incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO incidents (organization_id, patrol_id, user_id, title, description, priority, status, photos, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		i.OrganizationID,
		i.PatrolID,
		i.UserID,
		i.Title,
		i.Description,
		string(i.Priority),
		string(i.Status),
		i.Photos,
		i.Latitude,
		i.Longitude,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)

	if err != nil {
		return incident.Incident{}, fmt.Errorf("failed to create incident: %w", err)
	}

	return i, nil
}

// GetByID implements incident.IncidentRepository.
func (r *incidentRepository) GetByID(ctx context.Context, id string, organizationID string) (incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT i.id, i.organization_id, i.patrol_id, i.user_id, i.title, i.description,
			   i.priority, i.status, i.photos, i.latitude, i.longitude,
			   i.created_at, i.updated_at,
			   u.full_name AS user_name
		FROM incidents i
		LEFT JOIN users u ON u.id = i.user_id
		WHERE i.id = $1 AND i.organization_id = $2
	`

	var i incident.Incident
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&i.ID, &i.OrganizationID, &i.PatrolID, &i.UserID, &i.Title, &i.Description,
		&i.Priority, &i.Status, &i.Photos, &i.Latitude, &i.Longitude,
		&i.CreatedAt, &i.UpdatedAt,
		&i.UserName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return incident.Incident{}, incident.ErrIncidentNotFound
		}
		return incident.Incident{}, fmt.Errorf("failed to get incident by ID: %w", err)
	}

	return i, nil
}

// List implements incident.IncidentRepository.
func (r *incidentRepository) List(ctx context.Context, filter incident.IncidentFilter, organizationID string) ([]incident.Incident, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "i.organization_id = $1"
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Priority != nil && *filter.Priority != "" {
		baseWhere += fmt.Sprintf(" AND i.priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}

	if filter.PatrolID != nil && *filter.PatrolID != "" {
		baseWhere += fmt.Sprintf(" AND i.patrol_id = $%d", argIdx)
		args = append(args, *filter.PatrolID)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM incidents i WHERE " + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count incidents: %w", err)
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
		SELECT i.id, i.organization_id, i.patrol_id, i.user_id, i.title, i.description,
			   i.priority, i.status, i.photos, i.latitude, i.longitude,
			   i.created_at, i.updated_at,
			   u.full_name AS user_name
		FROM incidents i
		LEFT JOIN users u ON u.id = i.user_id
		WHERE %s
		ORDER BY i.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	var incidents []incident.Incident
	for rows.Next() {
		var i incident.Incident
		if err := rows.Scan(
			&i.ID, &i.OrganizationID, &i.PatrolID, &i.UserID, &i.Title, &i.Description,
			&i.Priority, &i.Status, &i.Photos, &i.Latitude, &i.Longitude,
			&i.CreatedAt, &i.UpdatedAt,
			&i.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, i)
	}

	return incidents, total, rows.Err()
}

// UpdateStatus implements incident.IncidentRepository. Transitions between
// statuses are unrestricted; updated_at is refreshed on every call.
func (r *incidentRepository) UpdateStatus(ctx context.Context, id string, organizationID string, status incident.Status) (incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE incidents
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3
		RETURNING id, organization_id, patrol_id, user_id, title, description,
				  priority, status, photos, latitude, longitude, created_at, updated_at
	`

	var i incident.Incident
	err := q.QueryRow(ctx, query, string(status), id, organizationID).Scan(
		&i.ID, &i.OrganizationID, &i.PatrolID, &i.UserID, &i.Title, &i.Description,
		&i.Priority, &i.Status, &i.Photos, &i.Latitude, &i.Longitude,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return incident.Incident{}, incident.ErrIncidentNotFound
		}
		return incident.Incident{}, fmt.Errorf("failed to update incident status: %w", err)
	}

	return i, nil
}
