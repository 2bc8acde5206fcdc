package timeclock

import "time"

// TimeEntry is one clock-in/clock-out pair. DurationMinutes is nil while the
// entry is open and fixed once the worker clocks out. The report services
// read entries but never mutate them.
type TimeEntry struct {
	ID              string
	OrganizationID  string
	UserID          string
	ClockIn         time.Time
	ClockOut        *time.Time
	DurationMinutes *int
	Notes           *string
	Latitude        *float64
	Longitude       *float64
	SiteID          *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	UserName *string
}

// IsOpen reports whether the entry has no clock-out yet.
func (e TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}
