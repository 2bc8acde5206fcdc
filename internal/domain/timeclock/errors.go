package timeclock

import "errors"

var (
	ErrAlreadyClockedIn = errors.New("you have an open time entry already")
	ErrNotClockedIn     = errors.New("you have not clocked in yet")
	ErrEntryNotFound    = errors.New("time entry not found")
)
