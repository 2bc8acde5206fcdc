package postgresql

import (
	"context"
	"fmt"

	"github.com/workforceone/fieldops-backend-go/internal/domain/patrol"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/database"
)

type patrolLogRepository struct {
	db *database.DB
}

func NewPatrolLogRepository(db *database.DB) patrol.PatrolLogRepository {
	return &patrolLogRepository{db: db}
}

// Append implements patrol.PatrolLogRepository. Each scan is its own row;
// concurrent scans on the same patrol never overwrite each other.
func (r *patrolLogRepository) Append(ctx context.Context, log patrol.PatrolLog) (patrol.PatrolLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patrol_logs (patrol_id, checkpoint_id, status, scanned_at, latitude, longitude, formatted_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		log.PatrolID,
		log.CheckpointID,
		string(log.Status),
		log.ScannedAt,
		log.Latitude,
		log.Longitude,
		log.FormattedAddress,
	).Scan(&log.ID)

	if err != nil {
		return patrol.PatrolLog{}, fmt.Errorf("failed to append patrol log: %w", err)
	}

	return log, nil
}

// ListByPatrol implements patrol.PatrolLogRepository. Ordering by scanned_at
// ascending is the patrol timeline contract.
func (r *patrolLogRepository) ListByPatrol(ctx context.Context, patrolID string) ([]patrol.PatrolLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.patrol_id, l.checkpoint_id, l.status, l.scanned_at,
			   l.latitude, l.longitude, l.formatted_address,
			   c.name AS checkpoint_name
		FROM patrol_logs l
		LEFT JOIN checkpoints c ON c.id = l.checkpoint_id
		WHERE l.patrol_id = $1
		ORDER BY l.scanned_at ASC
	`

	rows, err := q.Query(ctx, query, patrolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrol logs: %w", err)
	}
	defer rows.Close()

	var logs []patrol.PatrolLog
	for rows.Next() {
		var l patrol.PatrolLog
		if err := rows.Scan(
			&l.ID, &l.PatrolID, &l.CheckpointID, &l.Status, &l.ScannedAt,
			&l.Latitude, &l.Longitude, &l.FormattedAddress,
			&l.CheckpointName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patrol log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
