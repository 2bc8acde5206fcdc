package geofence

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/workforceone/fieldops-backend-go/internal/domain/geofence"
	"github.com/workforceone/fieldops-backend-go/internal/domain/notification"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
	"github.com/workforceone/fieldops-backend-go/internal/domain/user"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/sse"
)

type GeofenceServiceImpl struct {
	mu       sync.RWMutex
	monitors map[string]*Monitor

	cooldown            time.Duration
	hub                 *sse.Hub
	notificationService notification.Service
	userRepo            user.UserRepository
}

func NewGeofenceService(
	cooldown time.Duration,
	hub *sse.Hub,
	notificationService notification.Service,
	userRepo user.UserRepository,
) geofence.Service {
	return &GeofenceServiceImpl{
		monitors:            make(map[string]*Monitor),
		cooldown:            cooldown,
		hub:                 hub,
		notificationService: notificationService,
		userRepo:            userRepo,
	}
}

// Activate implements geofence.Service.
func (s *GeofenceServiceImpl) Activate(userID string, organizationID string, st site.Site) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitors[userID] = NewMonitor(userID, organizationID, st)
}

// Deactivate implements geofence.Service.
func (s *GeofenceServiceImpl) Deactivate(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.monitors, userID)
}

// ProcessSample implements geofence.Service.
func (s *GeofenceServiceImpl) ProcessSample(ctx context.Context, userID string, req geofence.PositionSampleRequest) (geofence.SampleResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.SampleResponse{}, err
	}

	s.mu.RLock()
	monitor, ok := s.monitors[userID]
	s.mu.RUnlock()

	// No active monitor: the guard is not clocked in at a site. The sample
	// is acknowledged and dropped.
	if !ok {
		return geofence.SampleResponse{Active: false}, nil
	}

	eval := monitor.Evaluate(req.Latitude, req.Longitude, time.Now(), s.cooldown)
	st := monitor.Site()

	resp := geofence.SampleResponse{
		Active:         true,
		SiteID:         st.ID,
		SiteName:       st.Name,
		InsideGeofence: eval.Inside,
		DistanceMeters: eval.DistanceMeters,
		AlertFired:     eval.FireAlert,
	}

	if eval.FireAlert {
		s.fireAlert(userID, monitor.organizationID, st, eval.DistanceMeters)
	}

	return resp, nil
}

// Status implements geofence.Service.
func (s *GeofenceServiceImpl) Status(userID string) geofence.StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	monitor, ok := s.monitors[userID]
	if !ok {
		return geofence.StatusResponse{Active: false}
	}
	st := monitor.Site()
	return geofence.StatusResponse{Active: true, SiteID: st.ID, SiteName: st.Name}
}

// fireAlert pushes the breach to the guard's device stream, then fans a
// supervisor notification out in the background. Neither path may block or
// fail sample processing.
func (s *GeofenceServiceImpl) fireAlert(userID, organizationID string, st site.Site, distanceMeters int) {
	s.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  "geofence_breach",
		Data: map[string]interface{}{
			"site_id":         st.ID,
			"site_name":       st.Name,
			"distance_meters": distanceMeters,
		},
	})

	go s.notifySupervisors(userID, organizationID, st, distanceMeters)
}

func (s *GeofenceServiceImpl) notifySupervisors(userID, organizationID string, st site.Site, distanceMeters int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	supervisors, err := s.userRepo.ListSupervisors(ctx, organizationID)
	if err != nil {
		slog.Error("Failed to list supervisors for geofence alert", "error", err, "user_id", userID)
		return
	}

	guardName := userID
	if guard, err := s.userRepo.GetByID(ctx, userID, organizationID); err == nil {
		guardName = guard.FullName
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(supervisors))
	for _, supervisor := range supervisors {
		reqs = append(reqs, notification.CreateNotificationRequest{
			OrganizationID: organizationID,
			RecipientID:    supervisor.ID,
			SenderID:       &userID,
			Type:           notification.TypeGeofenceBreach,
			Title:          "Geofence breach",
			Message:        fmt.Sprintf("%s left the geofence of %s (~%dm from site center)", guardName, st.Name, distanceMeters),
		})
	}

	if err := s.notificationService.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("Failed to queue geofence breach notifications", "error", err, "user_id", userID)
	}
}
