package credential

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credvault/internal/app/server/api/http/middleware/auth"
	"credvault/internal/domain/credential"
)

type Handler struct {
	service    credential.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service credential.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.createEnvOp(), h.createEnv)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.envOp(), h.env)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.visibilityOp(), h.visibility)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	creds, err := h.service.List(ctx, userID, input.ClientID)
	if err != nil {
		return nil, mapError(err)
	}
	return &listOutput{Body: creds}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, mapError(err)
	}
	return &createOutput{Body: *c}, nil
}

func (h *Handler) createEnv(ctx context.Context, input *createEnvInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Create(ctx, userID, credential.CreateRequest{
		ClientID:       input.Body.ClientID,
		Name:           input.Body.Name,
		Environment:    credential.Environment(input.Body.Environment),
		ServiceType:    credential.TypeEnv,
		URL:            input.Body.URL,
		Notes:          input.Body.Notes,
		Tags:           input.Body.Tags,
		Visibility:     credential.Visibility(input.Body.Visibility),
		AllowedUserIDs: input.Body.AllowedUserIDs,
		EnvVars:        input.Body.EnvVars,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &createOutput{Body: *c}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*getOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &getOutput{Body: *c}, nil
}

// env returns the stored bundle decoded into ordered pairs, ready for the
// edit form.
func (h *Handler) env(ctx context.Context, input *envInput) (*envOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if c.ServiceType != credential.TypeEnv {
		return nil, huma.Error422UnprocessableEntity("credential is not an environment-variable bundle")
	}

	return &envOutput{Body: EnvResponse{
		EnvVars: credential.DecodeEnvVars(c.Password),
	}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, mapError(err)
	}
	return &updateOutput{Body: *c}, nil
}

func (h *Handler) visibility(ctx context.Context, input *visibilityInput) (*visibilityOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.UpdateVisibility(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, mapError(err)
	}
	return &visibilityOutput{Body: *c}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, mapError(err)
	}
	return &deleteOutput{Body: StatusResponse{Status: "Ok"}}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, credential.ErrNotFound),
		errors.Is(err, credential.ErrClientNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, credential.ErrForbidden):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, credential.ErrValidation),
		errors.Is(err, credential.ErrInvalidType):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return err
}
