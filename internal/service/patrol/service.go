package patrol

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/patrol"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
)

type PatrolServiceImpl struct {
	patrolRepo     patrol.PatrolRepository
	patrolLogRepo  patrol.PatrolLogRepository
	siteRepo       site.SiteRepository
	checkpointRepo site.CheckpointRepository
}

func NewPatrolService(
	patrolRepo patrol.PatrolRepository,
	patrolLogRepo patrol.PatrolLogRepository,
	siteRepo site.SiteRepository,
	checkpointRepo site.CheckpointRepository,
) patrol.PatrolService {
	return &PatrolServiceImpl{
		patrolRepo:     patrolRepo,
		patrolLogRepo:  patrolLogRepo,
		siteRepo:       siteRepo,
		checkpointRepo: checkpointRepo,
	}
}

// getClaims extracts user_id and organization_id from JWT claims
func (s *PatrolServiceImpl) getClaims(ctx context.Context) (userID string, organizationID string, err error) {
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

// StartPatrol implements patrol.PatrolService.
func (s *PatrolServiceImpl) StartPatrol(ctx context.Context, req patrol.StartPatrolRequest) (patrol.PatrolResponse, error) {
	if err := req.Validate(); err != nil {
		return patrol.PatrolResponse{}, err
	}

	userID, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}

	st, err := s.siteRepo.GetByID(ctx, req.SiteID, organizationID)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}

	open, err := s.patrolRepo.GetOpenByUser(ctx, userID, organizationID)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}
	if open != nil {
		return patrol.PatrolResponse{}, patrol.ErrPatrolAlreadyOpen
	}

	created, err := s.patrolRepo.Create(ctx, patrol.Patrol{
		OrganizationID: organizationID,
		SiteID:         st.ID,
		UserID:         userID,
		Status:         patrol.StatusStarted,
		StartedAt:      time.Now(),
		Notes:          req.Notes,
	})
	if err != nil {
		return patrol.PatrolResponse{}, err
	}
	created.SiteName = &st.Name

	return toPatrolResponse(created), nil
}

// RecordScan implements patrol.PatrolService.
func (s *PatrolServiceImpl) RecordScan(ctx context.Context, req patrol.RecordScanRequest) (patrol.PatrolLogResponse, error) {
	if err := req.Validate(); err != nil {
		return patrol.PatrolLogResponse{}, err
	}

	_, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return patrol.PatrolLogResponse{}, err
	}

	p, err := s.patrolRepo.GetByID(ctx, req.PatrolID, organizationID)
	if err != nil {
		return patrol.PatrolLogResponse{}, err
	}

	// Append-only but closed: terminal patrols take no more scans.
	if p.IsClosed() {
		return patrol.PatrolLogResponse{}, patrol.ErrPatrolClosed
	}

	// A stale or foreign QR code surfaces as checkpoint-not-found; a valid
	// checkpoint from another site is a mismatch.
	checkpoint, err := s.checkpointRepo.GetByQRCode(ctx, req.QRCode, organizationID)
	if err != nil {
		return patrol.PatrolLogResponse{}, err
	}
	if checkpoint.SiteID != p.SiteID {
		return patrol.PatrolLogResponse{}, patrol.ErrCheckpointSiteMismatch
	}

	status := patrol.LogStatus(req.Status)
	if status == "" {
		status = patrol.LogStatusScanned
	}

	log, err := s.patrolLogRepo.Append(ctx, patrol.PatrolLog{
		PatrolID:         p.ID,
		CheckpointID:     checkpoint.ID,
		Status:           status,
		ScannedAt:        time.Now(),
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		FormattedAddress: req.FormattedAddress,
	})
	if err != nil {
		return patrol.PatrolLogResponse{}, err
	}
	log.CheckpointName = &checkpoint.Name

	return toPatrolLogResponse(log), nil
}

// EndPatrol implements patrol.PatrolService.
func (s *PatrolServiceImpl) EndPatrol(ctx context.Context, patrolID string, req patrol.EndPatrolRequest) (patrol.PatrolResponse, error) {
	if err := req.Validate(); err != nil {
		return patrol.PatrolResponse{}, err
	}

	_, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}

	p, err := s.patrolRepo.GetByID(ctx, patrolID, organizationID)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}
	if p.IsClosed() {
		return patrol.PatrolResponse{}, patrol.ErrPatrolClosed
	}

	outcome := patrol.Status(req.Outcome)
	if outcome == "" {
		outcome = patrol.StatusCompleted
	}

	closed, err := s.patrolRepo.Close(ctx, p.ID, organizationID, outcome, time.Now(), req.Notes)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}
	closed.SiteName = p.SiteName
	closed.UserName = p.UserName

	return toPatrolResponse(closed), nil
}

// GetPatrol implements patrol.PatrolService.
func (s *PatrolServiceImpl) GetPatrol(ctx context.Context, patrolID string) (patrol.PatrolDetailResponse, error) {
	_, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return patrol.PatrolDetailResponse{}, err
	}

	p, err := s.patrolRepo.GetByID(ctx, patrolID, organizationID)
	if err != nil {
		return patrol.PatrolDetailResponse{}, err
	}

	logs, err := s.patrolLogRepo.ListByPatrol(ctx, p.ID)
	if err != nil {
		return patrol.PatrolDetailResponse{}, err
	}

	detail := patrol.PatrolDetailResponse{
		Patrol: toPatrolResponse(p),
		Logs:   make([]patrol.PatrolLogResponse, 0, len(logs)),
	}
	for _, log := range logs {
		detail.Logs = append(detail.Logs, toPatrolLogResponse(log))
	}

	return detail, nil
}

// ListPatrols implements patrol.PatrolService.
func (s *PatrolServiceImpl) ListPatrols(ctx context.Context, filter patrol.PatrolFilter) ([]patrol.PatrolResponse, int64, error) {
	_, organizationID, err := s.getClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	patrols, total, err := s.patrolRepo.List(ctx, filter, organizationID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]patrol.PatrolResponse, 0, len(patrols))
	for _, p := range patrols {
		responses = append(responses, toPatrolResponse(p))
	}

	return responses, total, nil
}

func toPatrolResponse(p patrol.Patrol) patrol.PatrolResponse {
	resp := patrol.PatrolResponse{
		ID:        p.ID,
		SiteID:    p.SiteID,
		SiteName:  p.SiteName,
		UserID:    p.UserID,
		UserName:  p.UserName,
		Status:    string(p.Status),
		StartedAt: p.StartedAt.Format(time.RFC3339),
		Duration:  "ongoing",
		Notes:     p.Notes,
	}

	if p.EndedAt != nil {
		endedAt := p.EndedAt.Format(time.RFC3339)
		resp.EndedAt = &endedAt
	}
	if minutes := p.DurationMinutes(); minutes != nil {
		resp.Duration = fmt.Sprintf("%d mins", *minutes)
	}

	return resp
}

func toPatrolLogResponse(log patrol.PatrolLog) patrol.PatrolLogResponse {
	return patrol.PatrolLogResponse{
		ID:               log.ID,
		PatrolID:         log.PatrolID,
		CheckpointID:     log.CheckpointID,
		CheckpointName:   log.CheckpointName,
		Status:           string(log.Status),
		ScannedAt:        log.ScannedAt.Format(time.RFC3339),
		Latitude:         log.Latitude,
		Longitude:        log.Longitude,
		FormattedAddress: log.FormattedAddress,
	}
}
