package incident

import "context"

// IncidentRepository defines data access for incidents.
// All methods take organizationID to prevent cross-tenant access.
type IncidentRepository interface {
	Create(ctx context.Context, i Incident) (Incident, error)
	GetByID(ctx context.Context, id string, organizationID string) (Incident, error)
	List(ctx context.Context, filter IncidentFilter, organizationID string) ([]Incident, int64, error)

	// UpdateStatus sets the status and refreshes updated_at.
	UpdateStatus(ctx context.Context, id string, organizationID string, status Status) (Incident, error)
}
