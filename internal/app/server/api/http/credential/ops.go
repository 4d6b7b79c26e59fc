package credential

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/credentials",
		Summary:     "List visible credentials",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/credentials",
		Summary:     "Create a credential",
		Description: "Creates a credential of any service type. For environment-variable bundles the typed endpoint is more convenient.",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createEnvOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-create-env",
		Method:      http.MethodPost,
		Path:        "/api/v1/credentials/env",
		Summary:     "Create an environment-variable bundle",
		Tags:        []string{"credentials", "env"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/credentials/{id}",
		Summary:     "Get a credential",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) envOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-get-env",
		Method:      http.MethodGet,
		Path:        "/api/v1/credentials/{id}/env",
		Summary:     "Get a bundle's variables as ordered pairs",
		Tags:        []string{"credentials", "env"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/credentials/{id}",
		Summary:     "Update a credential",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) visibilityOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-update-visibility",
		Method:      http.MethodPut,
		Path:        "/api/v1/credentials/{id}/visibility",
		Summary:     "Overwrite who may view a credential",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/credentials/{id}",
		Summary:     "Delete a credential",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
