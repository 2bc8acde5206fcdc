package incident

import "context"

type IncidentService interface {
	CreateIncident(ctx context.Context, req CreateIncidentRequest) (IncidentResponse, error)
	GetIncident(ctx context.Context, id string) (IncidentResponse, error)
	ListIncidents(ctx context.Context, filter IncidentFilter) ([]IncidentResponse, int64, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (IncidentResponse, error)
}
