package site

import "time"

// Site is a guarded location owned by an organization. Its coordinates and
// radius define a circular geofence: a position is inside iff the
// great-circle distance to the center is at most RadiusMeters.
type Site struct {
	ID             string
	OrganizationID string
	Name           string
	Address        *string
	Latitude       float64
	Longitude      float64
	RadiusMeters   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Checkpoint is a fixed, QR-identified scan point within a site. Order is
// advisory for patrol sequencing and display, not enforced on scans.
type Checkpoint struct {
	ID             string
	SiteID         string
	OrganizationID string
	Name           string
	QRCode         string
	Order          int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
