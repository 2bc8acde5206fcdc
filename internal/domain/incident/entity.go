package incident

import "time"

type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
	StatusClosed        Status = "closed"
)

// ValidStatuses lists the accepted incident statuses. Transitions between
// them are unrestricted: supervisors may move an incident from any status to
// any other, including reopening a closed one.
var ValidStatuses = []Status{StatusOpen, StatusInvestigating, StatusResolved, StatusClosed}

func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var ValidPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) IsValid() bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Incident is a guard-submitted report, standalone or attached to a patrol.
// PatrolID is a weak reference: the patrol merely contextualizes the
// incident and its lifecycle is independent of patrol completion.
type Incident struct {
	ID             string
	OrganizationID string
	PatrolID       *string
	UserID         *string
	Title          string
	Description    *string
	Priority       Priority
	Status         Status
	Photos         []string
	Latitude       *float64
	Longitude      *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	UserName *string
}
