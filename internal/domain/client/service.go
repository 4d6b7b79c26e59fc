package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
	TouchAccess(id string)
}

// CreateRequest optionally carries initials and a color; both fall back to
// values derived from the name when absent.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Initials    string `json:"initials,omitempty"`
	Color       string `json:"color,omitempty"`
}

// UpdateRequest carries partial updates; nil means "leave unchanged".
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

const touchTimeout = 5 * time.Second

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) Servicer {
	return &Service{
		repo: repo,
		log:  log.With("component", "client_service"),
	}
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list clients", "error", err)
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.checkName(ctx, name, ""); err != nil {
		return nil, err
	}

	initials := strings.TrimSpace(req.Initials)
	if initials == "" {
		initials = DeriveInitials(name)
	}
	if utf8.RuneCountInString(initials) > 2 {
		return nil, fmt.Errorf("%w: initials must be at most 2 characters", ErrValidation)
	}
	color := req.Color
	if color == "" {
		color = PickColor(name)
	}

	now := time.Now()
	c := &Client{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  req.Description,
		Color:        color,
		Initials:     initials,
		LastAccessed: &now,
		CreatedAt:    now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Error("failed to create client", "name", name, "error", err)
		return nil, err
	}

	s.log.Info("client created", "client_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		if err := s.checkName(ctx, name, id); err != nil {
			return nil, err
		}
		c.Name = name
		c.Initials = DeriveInitials(name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Color != nil {
		c.Color = *req.Color
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.log.Error("failed to update client", "client_id", id, "error", err)
		return nil, err
	}

	s.log.Info("client updated", "client_id", id)
	return c, nil
}

// Delete removes the client together with all of its credentials.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete client", "client_id", id, "error", err)
		return err
	}
	s.log.Info("client deleted", "client_id", id)
	return nil
}

// TouchAccess records that the client was just opened. The write happens in
// the background and failures are only logged: a stale lastAccessed stamp
// must never slow down or fail the read path that triggered it.
func (s *Service) TouchAccess(id string) {
	now := time.Now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
		defer cancel()
		if err := s.repo.TouchAccess(ctx, id, now); err != nil {
			s.log.Warn("failed to record client access", "client_id", id, "error", err)
		}
	}()
}

// checkName enforces the unique client name; excludeID skips the client
// being renamed.
func (s *Service) checkName(ctx context.Context, name, excludeID string) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check client name: %w", err)
	}
	if existing.ID != excludeID {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	return nil
}
