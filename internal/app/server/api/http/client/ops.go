package client

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "clients-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/clients",
		Summary:     "List clients",
		Tags:        []string{"clients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "clients-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/clients",
		Summary:     "Create a client",
		Tags:        []string{"clients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "clients-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/clients/{id}",
		Summary:     "Get a client",
		Tags:        []string{"clients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "clients-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/clients/{id}",
		Summary:     "Update a client",
		Tags:        []string{"clients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "clients-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/clients/{id}",
		Summary:     "Delete a client and all of its credentials",
		Tags:        []string{"clients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) touchOp() huma.Operation {
	return huma.Operation{
		OperationID: "clients-touch-access",
		Method:      http.MethodPost,
		Path:        "/api/v1/clients/{id}/access",
		Summary:     "Record that the client was opened",
		Description: "Updates lastAccessed in the background; always returns immediately.",
		Tags:        []string{"clients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
