package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register a new user",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in and obtain a bearer token",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Revoke the current session",
		Tags:        []string{"auth"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authMiddleware,
	}
}

func (h *Handler) meOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-me",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Current user profile",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authMiddleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Used to pick allow-list members when sharing a credential.",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authMiddleware,
	}
}
