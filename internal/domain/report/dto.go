package report

import "time"

// AnomalyType enumerates the detector's rule families.
type AnomalyType string

const (
	AnomalyExtremeDuration AnomalyType = "extreme_duration"
	AnomalyHabitualLate    AnomalyType = "habitual_late"
	AnomalyPatternBreak    AnomalyType = "pattern_break"

	// AnomalyGhostShift is reserved. The rule needs clock-out location data
	// that is not captured yet; no rule emits it.
	AnomalyGhostShift AnomalyType = "ghost_shift"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Anomaly is a derived finding over a user's time entries. It is recomputed
// on every analysis call and never persisted. ID is stable for a given
// (rule, related entry) pair so the dashboard can use it as a display key.
type Anomaly struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	UserName       string      `json:"user_name"`
	Date           time.Time   `json:"date"`
	Type           AnomalyType `json:"type"`
	Severity       Severity    `json:"severity"`
	Description    string      `json:"description"`
	MetricValue    *string     `json:"metric_value,omitempty"`
	RelatedEntryID *string     `json:"related_entry_id,omitempty"`
}

// DailyHours is one calendar day's rollup.
type DailyHours struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"total_hours"`
	EntryCount int     `json:"entry_count"`
}

// LateArrival is one entry that clocked in past the 09:00 baseline.
type LateArrival struct {
	EntryID     string    `json:"entry_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	ClockIn     time.Time `json:"clock_in"`
	MinutesLate int       `json:"minutes_late"`
}

// TopWorker is one row of the total-hours leaderboard.
type TopWorker struct {
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	TotalHours float64 `json:"total_hours"`
}

// AttendanceSummary is the dashboard rollup over the trailing window.
type AttendanceSummary struct {
	MissingClockOut int           `json:"missing_clock_out"`
	EarlyDepartures int           `json:"early_departures"`
	LateArrivals    []LateArrival `json:"late_arrivals"`
	DailyHours      []DailyHours  `json:"daily_hours"`
	TopWorkers      []TopWorker   `json:"top_workers"`
	AvgHoursPerDay  float64       `json:"avg_hours_per_day"`
}
