package user

import "context"

// UserRepository defines data access for users. All lookups are scoped by
// organization ID on writes; reads used by auth look up by email globally.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string, organizationID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]User, error)

	// ListSupervisors returns active supervisor and admin users for alert fan-out.
	ListSupervisors(ctx context.Context, organizationID string) ([]User, error)
}
