package session

import (
	"context"
	"time"
)

// Repository stores session token hashes; the plaintext token never touches
// the database.
type Repository interface {
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (string, error)
	Revoke(ctx context.Context, tokenHash string) error
}
