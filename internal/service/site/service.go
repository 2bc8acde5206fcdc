package site

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
)

type SiteServiceImpl struct {
	siteRepo       site.SiteRepository
	checkpointRepo site.CheckpointRepository
}

func NewSiteService(siteRepo site.SiteRepository, checkpointRepo site.CheckpointRepository) site.SiteService {
	return &SiteServiceImpl{
		siteRepo:       siteRepo,
		checkpointRepo: checkpointRepo,
	}
}

// getOrganizationID extracts organization_id from JWT claims
func (s *SiteServiceImpl) getOrganizationID(ctx context.Context) (string, error) {
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

// generateQRToken returns a 32-character URL-safe token for checkpoint QR
// codes. 24 random bytes keep collisions out of reach even org-wide.
func generateQRToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate qr token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateSite implements site.SiteService.
func (s *SiteServiceImpl) CreateSite(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	created, err := s.siteRepo.Create(ctx, site.Site{
		OrganizationID: organizationID,
		Name:           req.Name,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		RadiusMeters:   req.RadiusMeters,
	})
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to create site: %w", err)
	}

	return toSiteResponse(created), nil
}

// GetSite implements site.SiteService.
func (s *SiteServiceImpl) GetSite(ctx context.Context, id string) (site.SiteResponse, error) {
	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	st, err := s.siteRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	return toSiteResponse(st), nil
}

// ListSites implements site.SiteService.
func (s *SiteServiceImpl) ListSites(ctx context.Context) ([]site.SiteResponse, error) {
	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	sites, err := s.siteRepo.List(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	responses := make([]site.SiteResponse, 0, len(sites))
	for _, st := range sites {
		responses = append(responses, toSiteResponse(st))
	}
	return responses, nil
}

// UpdateSite implements site.SiteService.
func (s *SiteServiceImpl) UpdateSite(ctx context.Context, id string, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	st, err := s.siteRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Address != nil {
		st.Address = req.Address
	}
	if req.Latitude != nil {
		st.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		st.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		st.RadiusMeters = *req.RadiusMeters
	}

	if err := s.siteRepo.Update(ctx, st); err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to update site: %w", err)
	}

	return toSiteResponse(st), nil
}

// DeleteSite implements site.SiteService.
func (s *SiteServiceImpl) DeleteSite(ctx context.Context, id string) error {
	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return err
	}

	return s.siteRepo.Delete(ctx, id, organizationID)
}

// CreateCheckpoint implements site.SiteService.
func (s *SiteServiceImpl) CreateCheckpoint(ctx context.Context, req site.CreateCheckpointRequest) (site.CheckpointResponse, error) {
	if err := req.Validate(); err != nil {
		return site.CheckpointResponse{}, err
	}

	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return site.CheckpointResponse{}, err
	}

	// Site must exist and belong to the caller's organization.
	if _, err := s.siteRepo.GetByID(ctx, req.SiteID, organizationID); err != nil {
		return site.CheckpointResponse{}, err
	}

	qrCode, err := generateQRToken()
	if err != nil {
		return site.CheckpointResponse{}, err
	}

	created, err := s.checkpointRepo.Create(ctx, site.Checkpoint{
		SiteID:         req.SiteID,
		OrganizationID: organizationID,
		Name:           req.Name,
		QRCode:         qrCode,
		Order:          req.Order,
		IsActive:       true,
	})
	if err != nil {
		return site.CheckpointResponse{}, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	return toCheckpointResponse(created), nil
}

// ListCheckpoints implements site.SiteService.
func (s *SiteServiceImpl) ListCheckpoints(ctx context.Context, siteID string) ([]site.CheckpointResponse, error) {
	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.siteRepo.GetByID(ctx, siteID, organizationID); err != nil {
		return nil, err
	}

	checkpoints, err := s.checkpointRepo.ListBySite(ctx, siteID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	responses := make([]site.CheckpointResponse, 0, len(checkpoints))
	for _, cp := range checkpoints {
		responses = append(responses, toCheckpointResponse(cp))
	}
	return responses, nil
}

// SetCheckpointActive implements site.SiteService.
func (s *SiteServiceImpl) SetCheckpointActive(ctx context.Context, id string, active bool) error {
	organizationID, err := s.getOrganizationID(ctx)
	if err != nil {
		return err
	}

	if _, err := s.checkpointRepo.GetByID(ctx, id, organizationID); err != nil {
		return err
	}

	return s.checkpointRepo.SetActive(ctx, id, organizationID, active)
}

func toSiteResponse(st site.Site) site.SiteResponse {
	return site.SiteResponse{
		ID:           st.ID,
		Name:         st.Name,
		Address:      st.Address,
		Latitude:     st.Latitude,
		Longitude:    st.Longitude,
		RadiusMeters: st.RadiusMeters,
		CreatedAt:    st.CreatedAt.Format(time.RFC3339),
	}
}

func toCheckpointResponse(cp site.Checkpoint) site.CheckpointResponse {
	return site.CheckpointResponse{
		ID:       cp.ID,
		SiteID:   cp.SiteID,
		Name:     cp.Name,
		QRCode:   cp.QRCode,
		Order:    cp.Order,
		IsActive: cp.IsActive,
	}
}
