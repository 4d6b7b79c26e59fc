package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const sessionTTL = 24 * time.Hour

type Servicer interface {
	Create(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "session_service"),
	}
}

// Create issues an opaque bearer token for the user. Only its sha256 hash
// is persisted.
func (s *Service) Create(ctx context.Context, userID string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.repo.Create(ctx, userID, hashToken(token), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

// Validate resolves a bearer token to its user id.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	userID, err := s.repo.Validate(ctx, hashToken(token))
	if err != nil {
		return "", ErrInvalidSession
	}
	return userID, nil
}

// Revoke drops the session; an already-expired token is not an error.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if err := s.repo.Revoke(ctx, hashToken(token)); err != nil {
		s.log.Error("failed to revoke session", "error", err)
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
