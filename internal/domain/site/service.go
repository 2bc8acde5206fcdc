package site

import "context"

type SiteService interface {
	CreateSite(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
	GetSite(ctx context.Context, id string) (SiteResponse, error)
	ListSites(ctx context.Context) ([]SiteResponse, error)
	UpdateSite(ctx context.Context, id string, req UpdateSiteRequest) (SiteResponse, error)
	DeleteSite(ctx context.Context, id string) error

	CreateCheckpoint(ctx context.Context, req CreateCheckpointRequest) (CheckpointResponse, error)
	ListCheckpoints(ctx context.Context, siteID string) ([]CheckpointResponse, error)
	SetCheckpointActive(ctx context.Context, id string, active bool) error
}
