package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validator.ValidateRegister(name, email, password); err != nil {
		s.log.Debug("registration rejected", "email", email, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Role:      DefaultRole,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.log.Error("failed to create user", "email", email, "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidAuth
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
