package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/report"
	"github.com/workforceone/fieldops-backend-go/internal/domain/timeclock"
	"github.com/workforceone/fieldops-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

const defaultWindowDays = 30

type ReportServiceImpl struct {
	timeEntryRepo timeclock.TimeEntryRepository
	userRepo      user.UserRepository
}

func NewReportService(timeEntryRepo timeclock.TimeEntryRepository, userRepo user.UserRepository) report.ReportService {
	return &ReportServiceImpl{
		timeEntryRepo: timeEntryRepo,
		userRepo:      userRepo,
	}
}

// getOrganizationID extracts organization_id from JWT claims
func (s *ReportServiceImpl) getOrganizationID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id not found in claims")
	}
	return organizationID, nil
}

// GetAttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) GetAttendanceSummary(ctx context.Context, windowDays int) (report.AttendanceSummary, error) {
	entries, names, err := s.loadWindow(ctx, windowDays)
	if err != nil {
		return report.AttendanceSummary{}, err
	}

	return ComputeSummary(entries, names), nil
}

// GetAnomalies implements report.ReportService.
func (s *ReportServiceImpl) GetAnomalies(ctx context.Context, windowDays int) ([]report.Anomaly, error) {
	entries, names, err := s.loadWindow(ctx, windowDays)
	if err != nil {
		return nil, err
	}

	return ComputeAnomalies(entries, names, time.Now()), nil
}

// loadWindow fetches the trailing window of entries and the organization's
// name directory in parallel. A failed directory fetch degrades to
// placeholder names rather than failing the whole computation.
func (s *ReportServiceImpl) loadWindow(ctx context.Context, windowDays int) ([]timeclock.TimeEntry, map[string]string, error) {
	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return nil, nil, err
	}

	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	var entries []timeclock.TimeEntry
	names := map[string]string{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		entries, err = s.timeEntryRepo.ListWindow(gctx, organizationID, since)
		if err != nil {
			return fmt.Errorf("failed to load time entry window: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		users, err := s.userRepo.ListByOrganization(gctx, organizationID)
		if err != nil {
			slog.Warn("Failed to load user directory for report, using placeholders", "error", err)
			return nil
		}
		for _, u := range users {
			names[u.ID] = u.FullName
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return entries, names, nil
}
