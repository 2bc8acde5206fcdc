package response

import (
	"errors"
	"net/http"

	"github.com/workforceone/fieldops-backend-go/internal/domain/auth"
	"github.com/workforceone/fieldops-backend-go/internal/domain/incident"
	"github.com/workforceone/fieldops-backend-go/internal/domain/notification"
	"github.com/workforceone/fieldops-backend-go/internal/domain/organization"
	"github.com/workforceone/fieldops-backend-go/internal/domain/patrol"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
	"github.com/workforceone/fieldops-backend-go/internal/domain/timeclock"
	"github.com/workforceone/fieldops-backend-go/internal/domain/user"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrSlugExists):
		Conflict(w, "Organization slug already taken")

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, site.ErrCheckpointNotFound):
		NotFound(w, "Checkpoint not found")
	case errors.Is(err, site.ErrQRCodeExists):
		Conflict(w, "QR code already assigned to a checkpoint")

	// Patrol domain errors
	case errors.Is(err, patrol.ErrPatrolNotFound):
		NotFound(w, "Patrol not found")
	case errors.Is(err, patrol.ErrPatrolClosed):
		Conflict(w, "Patrol is already closed")
	case errors.Is(err, patrol.ErrPatrolAlreadyOpen):
		Conflict(w, "An open patrol already exists")
	case errors.Is(err, patrol.ErrCheckpointSiteMismatch):
		BadRequest(w, "Checkpoint does not belong to the patrol's site", nil)
	case errors.Is(err, patrol.ErrInvalidLogStatus), errors.Is(err, patrol.ErrInvalidOutcome):
		BadRequest(w, err.Error(), nil)

	// Incident domain errors
	case errors.Is(err, incident.ErrIncidentNotFound):
		NotFound(w, "Incident not found")
	case errors.Is(err, incident.ErrInvalidStatus), errors.Is(err, incident.ErrInvalidPriority):
		BadRequest(w, err.Error(), nil)

	// Timeclock domain errors
	case errors.Is(err, timeclock.ErrAlreadyClockedIn):
		Conflict(w, "You have an open time entry already")
	case errors.Is(err, timeclock.ErrNotClockedIn):
		Conflict(w, "You have not clocked in yet")
	case errors.Is(err, timeclock.ErrEntryNotFound):
		NotFound(w, "Time entry not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
