package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/timeclock"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/database"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeclock.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

// Create implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, e timeclock.TimeEntry) (timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (organization_id, user_id, clock_in, notes, latitude, longitude, site_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.OrganizationID,
		e.UserID,
		e.ClockIn,
		e.Notes,
		e.Latitude,
		e.Longitude,
		e.SiteID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		return timeclock.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return e, nil
}

// GetByID implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string, organizationID string) (timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, user_id, clock_in, clock_out, duration_minutes,
			   notes, latitude, longitude, site_id, created_at, updated_at
		FROM time_entries
		WHERE id = $1 AND organization_id = $2
	`

	var e timeclock.TimeEntry
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&e.ID, &e.OrganizationID, &e.UserID, &e.ClockIn, &e.ClockOut, &e.DurationMinutes,
		&e.Notes, &e.Latitude, &e.Longitude, &e.SiteID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeclock.TimeEntry{}, timeclock.ErrEntryNotFound
		}
		return timeclock.TimeEntry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	return e, nil
}

// GetOpenByUser implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) GetOpenByUser(ctx context.Context, userID string, organizationID string) (*timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, user_id, clock_in, clock_out, duration_minutes,
			   notes, latitude, longitude, site_id, created_at, updated_at
		FROM time_entries
		WHERE user_id = $1
		  AND organization_id = $2
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	var e timeclock.TimeEntry
	err := q.QueryRow(ctx, query, userID, organizationID).Scan(
		&e.ID, &e.OrganizationID, &e.UserID, &e.ClockIn, &e.ClockOut, &e.DurationMinutes,
		&e.Notes, &e.Latitude, &e.Longitude, &e.SiteID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No open entry
		}
		return nil, fmt.Errorf("failed to get open time entry: %w", err)
	}

	return &e, nil
}

// CloseEntry implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) CloseEntry(ctx context.Context, id string, organizationID string, clockOut time.Time, durationMinutes int, notes *string) (timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET clock_out = $1, duration_minutes = $2, notes = COALESCE($3, notes), updated_at = NOW()
		WHERE id = $4 AND organization_id = $5 AND clock_out IS NULL
		RETURNING id, organization_id, user_id, clock_in, clock_out, duration_minutes,
				  notes, latitude, longitude, site_id, created_at, updated_at
	`

	var e timeclock.TimeEntry
	err := q.QueryRow(ctx, query, clockOut, durationMinutes, notes, id, organizationID).Scan(
		&e.ID, &e.OrganizationID, &e.UserID, &e.ClockIn, &e.ClockOut, &e.DurationMinutes,
		&e.Notes, &e.Latitude, &e.Longitude, &e.SiteID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeclock.TimeEntry{}, timeclock.ErrEntryNotFound
		}
		return timeclock.TimeEntry{}, fmt.Errorf("failed to close time entry: %w", err)
	}

	return e, nil
}

// List implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, filter timeclock.TimeEntryFilter, organizationID string) ([]timeclock.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "e.organization_id = $1"
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND e.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.From != nil && *filter.From != "" {
		baseWhere += fmt.Sprintf(" AND e.clock_in >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil && *filter.To != "" {
		baseWhere += fmt.Sprintf(" AND e.clock_in <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM time_entries e WHERE " + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
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
		SELECT e.id, e.organization_id, e.user_id, e.clock_in, e.clock_out, e.duration_minutes,
			   e.notes, e.latitude, e.longitude, e.site_id, e.created_at, e.updated_at,
			   u.full_name AS user_name
		FROM time_entries e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE %s
		ORDER BY e.clock_in DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeclock.TimeEntry
	for rows.Next() {
		var e timeclock.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.OrganizationID, &e.UserID, &e.ClockIn, &e.ClockOut, &e.DurationMinutes,
			&e.Notes, &e.Latitude, &e.Longitude, &e.SiteID, &e.CreatedAt, &e.UpdatedAt,
			&e.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

// ListWindow implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) ListWindow(ctx context.Context, organizationID string, since time.Time) ([]timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.organization_id, e.user_id, e.clock_in, e.clock_out, e.duration_minutes,
			   e.notes, e.latitude, e.longitude, e.site_id, e.created_at, e.updated_at,
			   u.full_name AS user_name
		FROM time_entries e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.organization_id = $1
		  AND e.clock_in >= $2
		ORDER BY e.clock_in DESC
	`

	rows, err := q.Query(ctx, query, organizationID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list window entries: %w", err)
	}
	defer rows.Close()

	var entries []timeclock.TimeEntry
	for rows.Next() {
		var e timeclock.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.OrganizationID, &e.UserID, &e.ClockIn, &e.ClockOut, &e.DurationMinutes,
			&e.Notes, &e.Latitude, &e.Longitude, &e.SiteID, &e.CreatedAt, &e.UpdatedAt,
			&e.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan window entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
