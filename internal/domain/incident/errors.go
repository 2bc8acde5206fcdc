package incident

import "errors"

var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrInvalidStatus    = errors.New("invalid incident status")
	ErrInvalidPriority  = errors.New("invalid incident priority")
)
