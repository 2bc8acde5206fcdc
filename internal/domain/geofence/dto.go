package geofence

import (
	"github.com/workforceone/fieldops-backend-go/internal/pkg/validator"
)

// PositionSampleRequest is one GPS sample POSTed by the mobile app. The
// positioning subsystem on the device throttles the cadence; the server
// does not rate-limit samples itself.
type PositionSampleRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *PositionSampleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
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

// SampleResponse tells the device what the server decided about the sample.
type SampleResponse struct {
	Active         bool    `json:"active"`
	SiteID         string  `json:"site_id,omitempty"`
	SiteName       string  `json:"site_name,omitempty"`
	InsideGeofence bool    `json:"inside_geofence"`
	DistanceMeters int     `json:"distance_meters"`
	AlertFired     bool    `json:"alert_fired"`
}

// StatusResponse reports whether a monitor is active for the guard.
type StatusResponse struct {
	Active   bool   `json:"active"`
	SiteID   string `json:"site_id,omitempty"`
	SiteName string `json:"site_name,omitempty"`
}
