package patrol

import "context"

type PatrolService interface {
	StartPatrol(ctx context.Context, req StartPatrolRequest) (PatrolResponse, error)
	RecordScan(ctx context.Context, req RecordScanRequest) (PatrolLogResponse, error)
	EndPatrol(ctx context.Context, patrolID string, req EndPatrolRequest) (PatrolResponse, error)
	GetPatrol(ctx context.Context, patrolID string) (PatrolDetailResponse, error)
	ListPatrols(ctx context.Context, filter PatrolFilter) ([]PatrolResponse, int64, error)
}
