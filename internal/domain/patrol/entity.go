package patrol

import "time"

type Status string

const (
	// StatusStarted is the open state while a guard is on their round.
	StatusStarted Status = "started"
	// StatusCompleted is the terminal state set by an explicit close-out.
	StatusCompleted Status = "completed"
	// StatusIncomplete is the terminal state for abandoned or timed-out rounds.
	StatusIncomplete Status = "incomplete"
)

type LogStatus string

const (
	LogStatusScanned       LogStatus = "scanned"
	LogStatusIssueReported LogStatus = "issue_reported"
)

// Patrol is one guard's timed round at a site. It owns an append-only
// sequence of PatrolLog entries ordered by scan time.
type Patrol struct {
	ID             string
	OrganizationID string
	SiteID         string
	UserID         string
	Status         Status
	StartedAt      time.Time
	EndedAt        *time.Time
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	SiteName *string
	UserName *string
}

// IsClosed reports whether the patrol is in a terminal state. Closed patrols
// reject further scans.
func (p Patrol) IsClosed() bool {
	return p.Status == StatusCompleted || p.Status == StatusIncomplete
}

// DurationMinutes returns the rounded patrol duration in minutes, or nil
// while the patrol is still open.
func (p Patrol) DurationMinutes() *int {
	if p.EndedAt == nil {
		return nil
	}
	minutes := int(p.EndedAt.Sub(p.StartedAt).Round(time.Minute) / time.Minute)
	return &minutes
}

// PatrolLog is one checkpoint scan event. Rows are append-only; insertion
// order matches scan order and consumers sort by ScannedAt ascending.
type PatrolLog struct {
	ID               string
	PatrolID         string
	CheckpointID     string
	Status           LogStatus
	ScannedAt        time.Time
	Latitude         *float64
	Longitude        *float64
	FormattedAddress *string

	// Joined fields
	CheckpointName *string
}
