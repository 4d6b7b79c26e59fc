package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/session"
)

type SessionRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSessionRepository(pool *pgxpool.Pool, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		pool: pool,
		log:  log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (user_id, token_hash, expires_at)
		 VALUES ($1, decode($2, 'hex'), $3)`,
		userID, tokenHash, expiresAt)
	return err
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (string, error) {
	var userID string
	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM sessions
		 WHERE token_hash = decode($1, 'hex') AND expires_at > NOW()`,
		tokenHash).Scan(&userID)
	if err != nil {
		return "", session.ErrInvalidSession
	}
	return userID, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM sessions WHERE token_hash = decode($1, 'hex')`, tokenHash)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
