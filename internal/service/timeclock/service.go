package timeclock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/geofence"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
	"github.com/workforceone/fieldops-backend-go/internal/domain/timeclock"
)

type TimeclockServiceImpl struct {
	timeEntryRepo   timeclock.TimeEntryRepository
	siteRepo        site.SiteRepository
	geofenceService geofence.Service
}

func NewTimeclockService(
	timeEntryRepo timeclock.TimeEntryRepository,
	siteRepo site.SiteRepository,
	geofenceService geofence.Service,
) timeclock.TimeclockService {
	return &TimeclockServiceImpl{
		timeEntryRepo:   timeEntryRepo,
		siteRepo:        siteRepo,
		geofenceService: geofenceService,
	}
}

// getClaims extracts user_id and organization_id from JWT claims
func (s *TimeclockServiceImpl) getClaims(ctx context.Context) (userID string, organizationID string, err error) {
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

// ClockIn implements timeclock.TimeclockService. Clocking in at a site
// activates the geofence monitor for the guard.
func (s *TimeclockServiceImpl) ClockIn(ctx context.Context, req timeclock.ClockInRequest) (timeclock.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.TimeEntryResponse{}, err
	}

	userID, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return timeclock.TimeEntryResponse{}, err
	}

	open, err := s.timeEntryRepo.GetOpenByUser(ctx, userID, organizationID)
	if err != nil {
		return timeclock.TimeEntryResponse{}, err
	}
	if open != nil {
		return timeclock.TimeEntryResponse{}, timeclock.ErrAlreadyClockedIn
	}

	var assignedSite *site.Site
	if req.SiteID != nil && *req.SiteID != "" {
		st, err := s.siteRepo.GetByID(ctx, *req.SiteID, organizationID)
		if err != nil {
			return timeclock.TimeEntryResponse{}, err
		}
		assignedSite = &st
	}

	entry, err := s.timeEntryRepo.Create(ctx, timeclock.TimeEntry{
		OrganizationID: organizationID,
		UserID:         userID,
		ClockIn:        time.Now(),
		Notes:          req.Notes,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		SiteID:         req.SiteID,
	})
	if err != nil {
		return timeclock.TimeEntryResponse{}, err
	}

	if assignedSite != nil {
		s.geofenceService.Activate(userID, organizationID, *assignedSite)
	}

	return toTimeEntryResponse(entry), nil
}

// ClockOut implements timeclock.TimeclockService. The entry's duration is
// fixed at clock-out and never recomputed. Clocking out deactivates the
// geofence monitor.
func (s *TimeclockServiceImpl) ClockOut(ctx context.Context, req timeclock.ClockOutRequest) (timeclock.TimeEntryResponse, error) {
	userID, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return timeclock.TimeEntryResponse{}, err
	}

	open, err := s.timeEntryRepo.GetOpenByUser(ctx, userID, organizationID)
	if err != nil {
		return timeclock.TimeEntryResponse{}, err
	}
	if open == nil {
		return timeclock.TimeEntryResponse{}, timeclock.ErrNotClockedIn
	}

	clockOut := time.Now()
	durationMinutes := int(clockOut.Sub(open.ClockIn).Round(time.Minute) / time.Minute)

	entry, err := s.timeEntryRepo.CloseEntry(ctx, open.ID, organizationID, clockOut, durationMinutes, req.Notes)
	if err != nil {
		return timeclock.TimeEntryResponse{}, err
	}

	s.geofenceService.Deactivate(userID)

	return toTimeEntryResponse(entry), nil
}

// ListEntries implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) ListEntries(ctx context.Context, filter timeclock.TimeEntryFilter) ([]timeclock.TimeEntryResponse, int64, error) {
	_, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	entries, total, err := s.timeEntryRepo.List(ctx, filter, organizationID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]timeclock.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toTimeEntryResponse(e))
	}

	return responses, total, nil
}

func toTimeEntryResponse(e timeclock.TimeEntry) timeclock.TimeEntryResponse {
	resp := timeclock.TimeEntryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		UserName:        e.UserName,
		SiteID:          e.SiteID,
		ClockIn:         e.ClockIn.Format(time.RFC3339),
		DurationMinutes: e.DurationMinutes,
		Notes:           e.Notes,
	}
	if e.ClockOut != nil {
		clockOut := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &clockOut
	}
	return resp
}
