package patrol

import "errors"

var (
	ErrPatrolNotFound = errors.New("patrol not found")

	// ErrPatrolClosed is returned when a scan is recorded against a patrol
	// that already reached a terminal state. The ledger is append-only but
	// closed.
	ErrPatrolClosed = errors.New("patrol is already closed")

	// ErrCheckpointSiteMismatch is returned when a scanned checkpoint does
	// not belong to the patrol's site. Indicates stale client state.
	ErrCheckpointSiteMismatch = errors.New("checkpoint does not belong to the patrol's site")

	ErrPatrolAlreadyOpen = errors.New("an open patrol already exists for this guard")
	ErrInvalidLogStatus  = errors.New("invalid patrol log status")
	ErrInvalidOutcome    = errors.New("invalid patrol outcome")
)
