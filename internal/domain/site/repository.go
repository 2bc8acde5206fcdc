package site

import "context"

// SiteRepository defines data access for sites.
// All methods take organizationID to prevent cross-tenant access.
type SiteRepository interface {
	Create(ctx context.Context, s Site) (Site, error)
	GetByID(ctx context.Context, id string, organizationID string) (Site, error)
	List(ctx context.Context, organizationID string) ([]Site, error)
	Update(ctx context.Context, s Site) error
	Delete(ctx context.Context, id string, organizationID string) error
}

// CheckpointRepository defines data access for checkpoints.
type CheckpointRepository interface {
	Create(ctx context.Context, c Checkpoint) (Checkpoint, error)
	GetByID(ctx context.Context, id string, organizationID string) (Checkpoint, error)
	GetByQRCode(ctx context.Context, qrCode string, organizationID string) (Checkpoint, error)
	ListBySite(ctx context.Context, siteID string, organizationID string) ([]Checkpoint, error)
	SetActive(ctx context.Context, id string, organizationID string, active bool) error
}
