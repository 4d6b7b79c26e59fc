package client

import (
	"context"
	"time"
)

// Repository persists clients. Delete cascades to the client's credentials
// in the same transaction.
type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	GetByName(ctx context.Context, name string) (*Client, error)
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	TouchAccess(ctx context.Context, id string, at time.Time) error
}
