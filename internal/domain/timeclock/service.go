package timeclock

import "context"

type TimeclockService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (TimeEntryResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (TimeEntryResponse, error)
	ListEntries(ctx context.Context, filter TimeEntryFilter) ([]TimeEntryResponse, int64, error)
}
