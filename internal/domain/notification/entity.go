package notification

import "time"

type Type string

const (
	TypeGeofenceBreach  Type = "geofence_breach"
	TypeIncidentCreated Type = "incident_created"
	TypeIncidentStatus  Type = "incident_status"
	TypePatrolAbandoned Type = "patrol_abandoned"
	TypeGeneral         Type = "general"
)

type Notification struct {
	ID             string
	OrganizationID string
	RecipientID    string
	SenderID       *string
	Type           Type
	Title          string
	Message        string
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}
