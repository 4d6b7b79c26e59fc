package user

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credvault/internal/app/server/api/http/middleware/auth"
	"credvault/internal/domain/session"
	"credvault/internal/domain/user"
)

type Handler struct {
	service        user.Servicer
	session        session.Servicer
	log            *slog.Logger
	middleware     huma.Middlewares
	authMiddleware huma.Middlewares
}

func NewHandler(service user.Servicer, sess session.Servicer, log *slog.Logger, public, authed huma.Middlewares) *Handler {
	return &Handler{
		service:        service,
		session:        sess,
		log:            log,
		middleware:     public,
		authMiddleware: authed,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	u, err := h.service.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			return nil, huma.Error409Conflict(err.Error())
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &registerOutput{Body: AuthResponse{Token: token, User: *u}}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &loginOutput{Body: AuthResponse{Token: token, User: *u}}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	token := strings.TrimPrefix(input.Authorization, "Bearer ")
	if err := h.session.Revoke(ctx, token); err != nil {
		return nil, err
	}
	return &logoutOutput{Body: StatusResponse{Status: "Ok"}}, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	u, err := h.service.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, err
	}
	return &meOutput{Body: *u}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	if _, ok := auth.GetUserID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	users, err := h.service.List(ctx)
	if err != nil {
		return nil, err
	}
	return &listOutput{Body: users}, nil
}
