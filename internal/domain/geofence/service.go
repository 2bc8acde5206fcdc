package geofence

import (
	"context"

	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
)

// Service is the server-resident geofence watcher. One monitor exists per
// clocked-in guard with an assigned site; the time clock activates and
// deactivates it. Alert delivery is best-effort and must never block
// sample processing.
type Service interface {
	// Activate starts (or replaces) the monitor for the guard. The monitor
	// starts armed: the guard is assumed inside until a sample says otherwise.
	Activate(userID string, organizationID string, s site.Site)

	// Deactivate stops the guard's monitor and discards its state.
	// Idempotent: safe to call when no monitor is active.
	Deactivate(userID string)

	// ProcessSample evaluates one position sample against the guard's
	// active monitor. With no active monitor the sample is acknowledged
	// and ignored.
	ProcessSample(ctx context.Context, userID string, req PositionSampleRequest) (SampleResponse, error)

	// Status reports whether a monitor is active for the guard.
	Status(userID string) StatusResponse
}
