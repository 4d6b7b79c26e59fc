package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/client"
)

type Handler struct {
	service    client.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service client.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.touchOp(), h.touch)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	clients, err := h.service.List(ctx)
	if err != nil {
		return nil, err
	}
	return &listOutput{Body: clients}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	c, err := h.service.Create(ctx, input.Body)
	if err != nil {
		return nil, mapError(err)
	}
	return &createOutput{Body: *c}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*getOutput, error) {
	c, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &getOutput{Body: *c}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	c, err := h.service.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, mapError(err)
	}
	return &updateOutput{Body: *c}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, mapError(err)
	}
	return &deleteOutput{Body: StatusResponse{Status: "Ok"}}, nil
}

func (h *Handler) touch(_ context.Context, input *touchInput) (*touchOutput, error) {
	h.service.TouchAccess(input.ID)
	return &touchOutput{
		Status: http.StatusAccepted,
		Body:   StatusResponse{Status: "Ok"},
	}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, client.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, client.ErrDuplicate):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, client.ErrValidation):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return err
}
