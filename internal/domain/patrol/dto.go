package patrol

import (
	"github.com/workforceone/fieldops-backend-go/internal/pkg/validator"
)

type StartPatrolRequest struct {
	SiteID string  `json:"site_id"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *StartPatrolRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordScanRequest struct {
	PatrolID         string   `json:"patrol_id"`
	QRCode           string   `json:"qr_code"`
	Status           string   `json:"status"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	FormattedAddress *string  `json:"formatted_address,omitempty"`
}

func (r *RecordScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PatrolID) {
		errs = append(errs, validator.ValidationError{
			Field:   "patrol_id",
			Message: "patrol_id is required",
		})
	}

	if validator.IsEmpty(r.QRCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "qr_code",
			Message: "qr_code is required",
		})
	}

	if r.Status != "" && !validator.IsInSlice(r.Status, []string{string(LogStatusScanned), string(LogStatusIssueReported)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be scanned or issue_reported",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EndPatrolRequest struct {
	// Outcome is "completed" for an explicit close-out or "incomplete" for
	// an abandoned session. Defaults to completed.
	Outcome string  `json:"outcome"`
	Notes   *string `json:"notes,omitempty"`
}

func (r *EndPatrolRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Outcome != "" && !validator.IsInSlice(r.Outcome, []string{string(StatusCompleted), string(StatusIncomplete)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "outcome",
			Message: "outcome must be completed or incomplete",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PatrolResponse struct {
	ID        string  `json:"id"`
	SiteID    string  `json:"site_id"`
	SiteName  *string `json:"site_name,omitempty"`
	UserID    string  `json:"user_id"`
	UserName  *string `json:"user_name,omitempty"`
	Status    string  `json:"status"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at,omitempty"`
	// Duration is "<n> mins" once ended, "ongoing" while open.
	Duration string  `json:"duration"`
	Notes    *string `json:"notes,omitempty"`
}

type PatrolLogResponse struct {
	ID               string   `json:"id"`
	PatrolID         string   `json:"patrol_id"`
	CheckpointID     string   `json:"checkpoint_id"`
	CheckpointName   *string  `json:"checkpoint_name,omitempty"`
	Status           string   `json:"status"`
	ScannedAt        string   `json:"scanned_at"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	FormattedAddress *string  `json:"formatted_address,omitempty"`
}

type PatrolDetailResponse struct {
	Patrol PatrolResponse      `json:"patrol"`
	Logs   []PatrolLogResponse `json:"logs"`
}

type PatrolFilter struct {
	SiteID *string
	UserID *string
	Status *string
	Page   int
	Limit  int
}
