package credential

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, userID, clientID string) ([]Credential, error)
	Get(ctx context.Context, userID, credentialID string) (*Credential, error)
	Create(ctx context.Context, userID string, req CreateRequest) (*Credential, error)
	Update(ctx context.Context, userID, credentialID string, req UpdateRequest) (*Credential, error)
	UpdateVisibility(ctx context.Context, userID, credentialID string, req VisibilityRequest) (*Credential, error)
	Delete(ctx context.Context, userID, credentialID string) error
}

// CreateRequest carries the collected form fields for a new credential.
// Username/Password/URL hold the per-type logical values before the save
// transform; EnvVars is used instead of them when ServiceType is env.
type CreateRequest struct {
	ClientID       string      `json:"clientId"`
	Name           string      `json:"name"`
	Environment    Environment `json:"environment"`
	ServiceType    ServiceType `json:"serviceType"`
	Username       string      `json:"username"`
	Password       string      `json:"password"`
	URL            string      `json:"url,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Visibility     Visibility  `json:"visibility,omitempty"`
	AllowedUserIDs []string    `json:"allowedUserIds,omitempty"`
	EnvVars        []EnvVar    `json:"envVars,omitempty"`
}

// UpdateRequest carries partial updates; nil means "leave unchanged".
// ClientID is deliberately absent: moving a credential between clients is
// unsupported.
type UpdateRequest struct {
	Name           *string      `json:"name,omitempty"`
	Environment    *Environment `json:"environment,omitempty"`
	ServiceType    *ServiceType `json:"serviceType,omitempty"`
	Username       *string      `json:"username,omitempty"`
	Password       *string      `json:"password,omitempty"`
	URL            *string      `json:"url,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	Tags           *[]string    `json:"tags,omitempty"`
	EnvVars        *[]EnvVar    `json:"envVars,omitempty"`
	Visibility     *Visibility  `json:"visibility,omitempty"`
	AllowedUserIDs *[]string    `json:"allowedUserIds,omitempty"`
}

// VisibilityRequest fully overwrites a credential's visibility state.
type VisibilityRequest struct {
	Visibility     Visibility `json:"visibility"`
	AllowedUserIDs []string   `json:"allowedUserIds,omitempty"`
}

type Service struct {
	repo    Repository
	users   UserDirectory
	factory *Factory
	log     *slog.Logger
}

func NewService(repo Repository, users UserDirectory, factory *Factory, log *slog.Logger) Servicer {
	return &Service{
		repo:    repo,
		users:   users,
		factory: factory,
		log:     log.With("component", "credential_service"),
	}
}

// List returns the credentials the user may view, optionally scoped to one
// client. IsOwner is computed per viewer.
func (s *Service) List(ctx context.Context, userID, clientID string) ([]Credential, error) {
	var (
		creds []Credential
		err   error
	)
	if clientID == "" {
		creds, err = s.repo.List(ctx)
	} else {
		creds, err = s.repo.ListByClient(ctx, clientID)
	}
	if err != nil {
		s.log.Error("failed to list credentials", "user_id", userID, "client_id", clientID, "error", err)
		return nil, fmt.Errorf("list credentials: %w", err)
	}

	visible := make([]Credential, 0, len(creds))
	for _, c := range creds {
		if !CanView(&c, userID) {
			continue
		}
		c.IsOwner = Owns(&c, userID)
		visible = append(visible, c)
	}
	return visible, nil
}

func (s *Service) Get(ctx context.Context, userID, credentialID string) (*Credential, error) {
	c, err := s.repo.Get(ctx, credentialID)
	if err != nil {
		return nil, err
	}
	if !CanView(c, userID) {
		return nil, ErrForbidden
	}
	c.IsOwner = Owns(c, userID)
	return c, nil
}

// Create runs the full save pipeline: type mapping, validation, visibility
// resolution, identity/timestamps, then a transactional insert that also
// bumps the owning client's counter.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Credential, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return nil, fmt.Errorf("%w: client is required", ErrValidation)
	}
	if !req.Environment.Valid() {
		return nil, fmt.Errorf("%w: unknown environment %q", ErrValidation, req.Environment)
	}
	if !req.ServiceType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, req.ServiceType)
	}

	sec, err := s.buildSecret(req)
	if err != nil {
		return nil, err
	}
	fields, err := sec.Flatten(req.Name)
	if err != nil {
		return nil, err
	}

	isLegacy, allowed, err := s.resolveVisibility(ctx, req.Visibility, req.AllowedUserIDs)
	if err != nil {
		return nil, err
	}

	owner, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Credential{
		ID:           uuid.NewString(),
		ClientID:     req.ClientID,
		Name:         req.Name,
		Environment:  req.Environment,
		ServiceType:  req.ServiceType,
		Username:     fields.Username,
		Password:     fields.Password,
		URL:          fields.URL,
		Notes:        req.Notes,
		Tags:         req.Tags,
		LastUpdated:  now,
		CreatedAt:    now,
		OwnerID:      owner.ID,
		OwnerName:    owner.Name,
		IsLegacy:     isLegacy,
		IsOwner:      true,
		AllowedUsers: allowed,
		ViewerCount:  len(allowed),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Error("failed to create credential",
			"user_id", userID, "client_id", req.ClientID, "type", req.ServiceType, "error", err)
		return nil, err
	}

	s.log.Info("credential created",
		"credential_id", c.ID, "client_id", c.ClientID, "type", c.ServiceType, "user_id", userID)
	return c, nil
}

// Update merges partial fields into an existing credential, re-running the
// type mapping when any secret-bearing field changed, and always refreshes
// LastUpdated. Visibility changes are owner-only.
func (s *Service) Update(ctx context.Context, userID, credentialID string, req UpdateRequest) (*Credential, error) {
	c, err := s.repo.Get(ctx, credentialID)
	if err != nil {
		return nil, err
	}
	if !CanView(c, userID) {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		c.Name = *req.Name
	}
	if req.Environment != nil {
		if !req.Environment.Valid() {
			return nil, fmt.Errorf("%w: unknown environment %q", ErrValidation, *req.Environment)
		}
		c.Environment = *req.Environment
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.Tags != nil {
		c.Tags = *req.Tags
	}

	if err := s.applySecretUpdate(c, req); err != nil {
		return nil, err
	}

	if req.Visibility != nil || req.AllowedUserIDs != nil {
		if c.OwnerID != "" && c.OwnerID != userID {
			return nil, fmt.Errorf("%w: only the owner can modify who has access", ErrForbidden)
		}
		mode := c.Mode()
		if req.Visibility != nil {
			mode = *req.Visibility
		}
		var ids []string
		if req.AllowedUserIDs != nil {
			ids = *req.AllowedUserIDs
		}
		if err := s.applyVisibility(ctx, c, userID, mode, ids); err != nil {
			return nil, err
		}
	}

	c.LastUpdated = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		s.log.Error("failed to update credential", "credential_id", credentialID, "user_id", userID, "error", err)
		return nil, err
	}

	c.IsOwner = Owns(c, userID)
	s.log.Info("credential updated", "credential_id", credentialID, "user_id", userID)
	return c, nil
}

// UpdateVisibility overwrites the visibility state; only the owner may do
// this (an ownerless legacy credential is claimed by the caller when
// restricting it).
func (s *Service) UpdateVisibility(ctx context.Context, userID, credentialID string, req VisibilityRequest) (*Credential, error) {
	c, err := s.repo.Get(ctx, credentialID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != "" && c.OwnerID != userID {
		return nil, fmt.Errorf("%w: only the owner can modify who has access", ErrForbidden)
	}

	if err := s.applyVisibility(ctx, c, userID, req.Visibility, req.AllowedUserIDs); err != nil {
		return nil, err
	}

	c.LastUpdated = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		s.log.Error("failed to update visibility", "credential_id", credentialID, "user_id", userID, "error", err)
		return nil, err
	}

	c.IsOwner = Owns(c, userID)
	s.log.Info("credential visibility updated",
		"credential_id", credentialID, "mode", c.Mode(), "viewer_count", c.ViewerCount)
	return c, nil
}

// Delete removes the credential and decrements the owning client's counter
// (floored at zero). Restricted credentials may only be deleted by their
// owner.
func (s *Service) Delete(ctx context.Context, userID, credentialID string) error {
	c, err := s.repo.Get(ctx, credentialID)
	if err != nil {
		return err
	}
	if !c.IsLegacy && !Owns(c, userID) {
		return fmt.Errorf("%w: only the owner can delete this credential", ErrForbidden)
	}

	if err := s.repo.Delete(ctx, credentialID); err != nil {
		s.log.Error("failed to delete credential", "credential_id", credentialID, "user_id", userID, "error", err)
		return err
	}

	s.log.Info("credential deleted", "credential_id", credentialID, "user_id", userID)
	return nil
}

func (s *Service) buildSecret(req CreateRequest) (Secret, error) {
	if req.ServiceType == TypeEnv {
		return &EnvBundleSecret{Vars: req.EnvVars, Endpoint: req.URL}, nil
	}
	return s.factory.Parse(req.ServiceType, FieldSet{
		Username: req.Username,
		Password: req.Password,
		URL:      req.URL,
	})
}

// applySecretUpdate re-runs the field mapping when the request touches a
// secret-bearing field, merging request values over the stored ones.
func (s *Service) applySecretUpdate(c *Credential, req UpdateRequest) error {
	if req.ServiceType == nil && req.Username == nil && req.Password == nil &&
		req.URL == nil && req.EnvVars == nil {
		return nil
	}

	typ := c.ServiceType
	if req.ServiceType != nil {
		if !req.ServiceType.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidType, *req.ServiceType)
		}
		typ = *req.ServiceType
	}

	fields := FieldSet{Username: c.Username, Password: c.Password, URL: c.URL}
	if req.Username != nil {
		fields.Username = *req.Username
	}
	if req.Password != nil {
		fields.Password = *req.Password
	}
	if req.URL != nil {
		fields.URL = *req.URL
	}

	var sec Secret
	if typ == TypeEnv && req.EnvVars != nil {
		sec = &EnvBundleSecret{Vars: *req.EnvVars, Endpoint: fields.URL}
	} else {
		var err error
		sec, err = s.factory.Parse(typ, fields)
		if err != nil {
			return err
		}
	}

	flat, err := sec.Flatten(c.Name)
	if err != nil {
		return err
	}

	c.ServiceType = typ
	c.Username = flat.Username
	c.Password = flat.Password
	c.URL = flat.URL
	return nil
}

// applyVisibility overwrites the credential's visibility state in place.
// Switching to Everyone clears the allow-list; the owner identity is never
// altered by a mode change, except that an ownerless legacy credential is
// claimed by the caller when first restricted.
func (s *Service) applyVisibility(ctx context.Context, c *Credential, userID string, mode Visibility, ids []string) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown visibility %q", ErrValidation, mode)
	}

	if mode == VisibilityEveryone {
		c.IsLegacy = true
		c.AllowedUsers = nil
		c.ViewerCount = 0
		return nil
	}

	allowed, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve allowed users: %w", err)
	}
	c.IsLegacy = false
	c.AllowedUsers = allowed
	c.ViewerCount = len(allowed)

	if c.OwnerID == "" {
		owner, err := s.lookupUser(ctx, userID)
		if err != nil {
			return err
		}
		c.OwnerID = owner.ID
		c.OwnerName = owner.Name
	}
	return nil
}

// resolveVisibility turns the requested mode into the stored legacy flag
// and snapshot list. An absent mode falls back to the wire compatibility
// rule: ids present means restricted, none means everyone.
func (s *Service) resolveVisibility(ctx context.Context, mode Visibility, ids []string) (bool, []AllowedUser, error) {
	if mode == "" {
		if len(ids) > 0 {
			mode = VisibilityRestricted
		} else {
			mode = VisibilityEveryone
		}
	}
	if !mode.Valid() {
		return false, nil, fmt.Errorf("%w: unknown visibility %q", ErrValidation, mode)
	}
	if mode == VisibilityEveryone {
		return true, nil, nil
	}
	allowed, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return false, nil, fmt.Errorf("resolve allowed users: %w", err)
	}
	return false, allowed, nil
}

func (s *Service) lookupUser(ctx context.Context, userID string) (AllowedUser, error) {
	found, err := s.users.FindByIDs(ctx, []string{userID})
	if err != nil {
		return AllowedUser{}, fmt.Errorf("resolve user: %w", err)
	}
	if len(found) == 0 {
		return AllowedUser{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return found[0], nil
}
