package incident

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/incident"
	"github.com/workforceone/fieldops-backend-go/internal/domain/notification"
	"github.com/workforceone/fieldops-backend-go/internal/domain/organization"
	"github.com/workforceone/fieldops-backend-go/internal/domain/user"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/email"
)

type IncidentServiceImpl struct {
	incidentRepo        incident.IncidentRepository
	userRepo            user.UserRepository
	organizationRepo    organization.OrganizationRepository
	notificationService notification.Service
	emailService        email.EmailService
	frontendURL         string
}

func NewIncidentService(
	incidentRepo incident.IncidentRepository,
	userRepo user.UserRepository,
	organizationRepo organization.OrganizationRepository,
	notificationService notification.Service,
	emailService email.EmailService,
	frontendURL string,
) incident.IncidentService {
	return &IncidentServiceImpl{
		incidentRepo:        incidentRepo,
		userRepo:            userRepo,
		organizationRepo:    organizationRepo,
		notificationService: notificationService,
		emailService:        emailService,
		frontendURL:         frontendURL,
	}
}

// getClaims extracts user_id and organization_id from JWT claims
func (s *IncidentServiceImpl) getClaims(ctx context.Context) (userID string, organizationID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id not found in claims")
	}

	organizationID, ok = claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", "", fmt.Errorf("organization_id not found in claims")
	}

	return userID, organizationID, nil
}

// CreateIncident implements incident.IncidentService.
func (s *IncidentServiceImpl) CreateIncident(ctx context.Context, req incident.CreateIncidentRequest) (incident.IncidentResponse, error) {
	if err := req.Validate(); err != nil {
		return incident.IncidentResponse{}, err
	}

	userID, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return incident.IncidentResponse{}, err
	}

	priority := incident.Priority(req.Priority)
	if priority == "" {
		priority = incident.PriorityMedium
	}

	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}

	created, err := s.incidentRepo.Create(ctx, incident.Incident{
		OrganizationID: organizationID,
		PatrolID:       req.PatrolID,
		UserID:         &userID,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       priority,
		Status:         incident.StatusOpen,
		Photos:         photos,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		return incident.IncidentResponse{}, err
	}

	s.alertSupervisors(ctx, created, userID, organizationID)

	return toIncidentResponse(created), nil
}

// GetIncident implements incident.IncidentService.
func (s *IncidentServiceImpl) GetIncident(ctx context.Context, id string) (incident.IncidentResponse, error) {
	_, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return incident.IncidentResponse{}, err
	}

	found, err := s.incidentRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return incident.IncidentResponse{}, err
	}

	return toIncidentResponse(found), nil
}

// ListIncidents implements incident.IncidentService.
func (s *IncidentServiceImpl) ListIncidents(ctx context.Context, filter incident.IncidentFilter) ([]incident.IncidentResponse, int64, error) {
	_, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	incidents, total, err := s.incidentRepo.List(ctx, filter, organizationID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]incident.IncidentResponse, 0, len(incidents))
	for _, i := range incidents {
		responses = append(responses, toIncidentResponse(i))
	}

	return responses, total, nil
}

// UpdateStatus implements incident.IncidentService. Transitions are
// unrestricted: any of the four statuses is reachable from any other,
// including reopening a resolved or closed incident.
func (s *IncidentServiceImpl) UpdateStatus(ctx context.Context, id string, req incident.UpdateStatusRequest) (incident.IncidentResponse, error) {
	if err := req.Validate(); err != nil {
		return incident.IncidentResponse{}, err
	}

	actorID, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return incident.IncidentResponse{}, err
	}

	updated, err := s.incidentRepo.UpdateStatus(ctx, id, organizationID, incident.Status(req.Status))
	if err != nil {
		return incident.IncidentResponse{}, err
	}

	// Tell the reporter their incident moved, unless they moved it themselves.
	if updated.UserID != nil && *updated.UserID != actorID {
		notifyErr := s.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
			OrganizationID: organizationID,
			RecipientID:    *updated.UserID,
			SenderID:       &actorID,
			Type:           notification.TypeIncidentStatus,
			Title:          "Incident updated",
			Message:        fmt.Sprintf("%q is now %s", updated.Title, updated.Status),
		})
		if notifyErr != nil {
			slog.Error("Failed to queue incident status notification", "error", notifyErr, "incident_id", updated.ID)
		}
	}

	return toIncidentResponse(updated), nil
}

// alertSupervisors fans the new incident out to supervisors: an in-app
// notification always, plus an email when the priority is critical. The
// notification queue is the async boundary; only the email (which retries)
// moves to a background goroutine. Failures are logged and dropped.
func (s *IncidentServiceImpl) alertSupervisors(ctx context.Context, created incident.Incident, reporterID, organizationID string) {
	supervisors, err := s.userRepo.ListSupervisors(ctx, organizationID)
	if err != nil {
		slog.Error("Failed to list supervisors for incident alert", "error", err, "incident_id", created.ID)
		return
	}

	reporterName := "Unknown Employee"
	if reporter, err := s.userRepo.GetByID(ctx, reporterID, organizationID); err == nil {
		reporterName = reporter.FullName
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(supervisors))
	for _, supervisor := range supervisors {
		reqs = append(reqs, notification.CreateNotificationRequest{
			OrganizationID: organizationID,
			RecipientID:    supervisor.ID,
			SenderID:       &reporterID,
			Type:           notification.TypeIncidentCreated,
			Title:          "New incident reported",
			Message:        fmt.Sprintf("%s reported %q (%s priority)", reporterName, created.Title, created.Priority),
		})
	}
	if err := s.notificationService.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("Failed to queue incident notifications", "error", err, "incident_id", created.ID)
	}

	if created.Priority == incident.PriorityCritical {
		go s.emailSupervisors(supervisors, created, reporterName, organizationID)
	}
}

// emailSupervisors sends the critical-incident email to every supervisor.
func (s *IncidentServiceImpl) emailSupervisors(supervisors []user.User, created incident.Incident, reporterName, organizationID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	org, err := s.organizationRepo.GetByID(ctx, organizationID)
	if err != nil {
		slog.Error("Failed to load organization for incident email", "error", err, "incident_id", created.ID)
		return
	}

	dashboardLink := fmt.Sprintf("%s/incidents/%s", s.frontendURL, created.ID)
	for _, supervisor := range supervisors {
		if err := s.emailService.SendIncidentAlert(supervisor.Email, created.Title, string(created.Priority), reporterName, org.Name, dashboardLink); err != nil {
			slog.Error("Failed to send incident alert email", "error", err, "recipient", supervisor.Email)
		}
	}
}

func toIncidentResponse(i incident.Incident) incident.IncidentResponse {
	photos := i.Photos
	if photos == nil {
		photos = []string{}
	}

	return incident.IncidentResponse{
		ID:          i.ID,
		PatrolID:    i.PatrolID,
		UserID:      i.UserID,
		UserName:    i.UserName,
		Title:       i.Title,
		Description: i.Description,
		Priority:    string(i.Priority),
		Status:      string(i.Status),
		Photos:      photos,
		Latitude:    i.Latitude,
		Longitude:   i.Longitude,
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt.Format(time.RFC3339),
	}
}
