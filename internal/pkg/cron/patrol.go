package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workforceone/fieldops-backend-go/internal/domain/patrol"
)

// PatrolJobs closes out patrols that were never ended by the guard. The
// abandonment boundary is deployment policy (PATROL_ABANDON_AFTER), not part
// of the ledger itself.
type PatrolJobs struct {
	patrolRepo   patrol.PatrolRepository
	abandonAfter time.Duration
}

func NewPatrolJobs(patrolRepo patrol.PatrolRepository, abandonAfter time.Duration) *PatrolJobs {
	return &PatrolJobs{
		patrolRepo:   patrolRepo,
		abandonAfter: abandonAfter,
	}
}

// CloseAbandonedPatrols marks stale started patrols as incomplete.
func (j *PatrolJobs) CloseAbandonedPatrols(ctx context.Context) error {
	now := time.Now().UTC()
	cutoff := now.Add(-j.abandonAfter)

	closed, err := j.patrolRepo.CloseAbandoned(ctx, cutoff, now)
	if err != nil {
		return fmt.Errorf("failed to close abandoned patrols: %w", err)
	}

	if closed > 0 {
		slog.Info("Closed abandoned patrols", "count", closed, "cutoff", cutoff)
	}

	return nil
}
