package patrol

import (
	"context"
	"time"
)

// PatrolRepository defines data access for patrols.
// All methods take organizationID to prevent cross-tenant access.
type PatrolRepository interface {
	Create(ctx context.Context, p Patrol) (Patrol, error)
	GetByID(ctx context.Context, id string, organizationID string) (Patrol, error)
	GetOpenByUser(ctx context.Context, userID string, organizationID string) (*Patrol, error)
	List(ctx context.Context, filter PatrolFilter, organizationID string) ([]Patrol, int64, error)

	// Close sets the terminal status and endedAt on an open patrol.
	Close(ctx context.Context, id string, organizationID string, status Status, endedAt time.Time, notes *string) (Patrol, error)

	// CloseAbandoned closes every patrol still in started state whose
	// startedAt is before the cutoff, marking them incomplete. Returns the
	// number of patrols closed.
	CloseAbandoned(ctx context.Context, cutoff time.Time, endedAt time.Time) (int64, error)
}

// PatrolLogRepository defines data access for patrol scan logs. Append-only:
// no update or delete methods exist on purpose.
type PatrolLogRepository interface {
	Append(ctx context.Context, log PatrolLog) (PatrolLog, error)

	// ListByPatrol returns scan logs ordered by scanned_at ascending; this
	// ordering is the patrol timeline.
	ListByPatrol(ctx context.Context, patrolID string) ([]PatrolLog, error)
}
