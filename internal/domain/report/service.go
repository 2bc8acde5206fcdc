package report

import "context"

// ReportService computes attendance rollups and anomaly findings over the
// trailing window of time entries. Pure read-then-compute: safe to run
// concurrently and repeatedly.
type ReportService interface {
	// GetAttendanceSummary aggregates the trailing windowDays of entries.
	GetAttendanceSummary(ctx context.Context, windowDays int) (AttendanceSummary, error)

	// GetAnomalies runs the detector over the trailing windowDays of
	// entries and returns findings sorted by date descending.
	GetAnomalies(ctx context.Context, windowDays int) ([]Anomaly, error)
}
