package credential

import "context"

// Repository persists credentials. Create and Delete also maintain the
// owning client's denormalized credential counter; both run as a single
// transaction so the counter never drifts from the live rows.
type Repository interface {
	List(ctx context.Context) ([]Credential, error)
	ListByClient(ctx context.Context, clientID string) ([]Credential, error)
	Get(ctx context.Context, id string) (*Credential, error)
	Create(ctx context.Context, c *Credential) error
	Update(ctx context.Context, c *Credential) error
	Delete(ctx context.Context, id string) error
}

// UserDirectory resolves user ids into allow-list snapshots at write time.
type UserDirectory interface {
	FindByIDs(ctx context.Context, ids []string) ([]AllowedUser, error)
}
