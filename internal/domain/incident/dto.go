package incident

import (
	"github.com/workforceone/fieldops-backend-go/internal/pkg/validator"
)

type CreateIncidentRequest struct {
	PatrolID    *string  `json:"patrol_id,omitempty"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Priority    string   `json:"priority"`
	Photos      []string `json:"photos,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

func (r *CreateIncidentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if r.Priority != "" && !Priority(r.Priority).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be low, medium, high or critical",
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

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be open, investigating, resolved or closed",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type IncidentResponse struct {
	ID          string   `json:"id"`
	PatrolID    *string  `json:"patrol_id,omitempty"`
	UserID      *string  `json:"user_id,omitempty"`
	UserName    *string  `json:"user_name,omitempty"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Photos      []string `json:"photos"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type IncidentFilter struct {
	Status   *string
	Priority *string
	PatrolID *string
	Page     int
	Limit    int
}
