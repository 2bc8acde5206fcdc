package timeclock

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access for time entries.
// All methods take organizationID to prevent cross-tenant access.
type TimeEntryRepository interface {
	Create(ctx context.Context, e TimeEntry) (TimeEntry, error)
	GetByID(ctx context.Context, id string, organizationID string) (TimeEntry, error)
	GetOpenByUser(ctx context.Context, userID string, organizationID string) (*TimeEntry, error)

	// CloseEntry sets clock_out and the fixed duration on an open entry.
	CloseEntry(ctx context.Context, id string, organizationID string, clockOut time.Time, durationMinutes int, notes *string) (TimeEntry, error)

	List(ctx context.Context, filter TimeEntryFilter, organizationID string) ([]TimeEntry, int64, error)

	// ListWindow returns all entries whose clock_in falls in [since, now],
	// ordered by clock_in descending. Feeds the aggregator and anomaly
	// detector.
	ListWindow(ctx context.Context, organizationID string, since time.Time) ([]TimeEntry, error)
}
