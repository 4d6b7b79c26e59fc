package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/session"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

// Middleware validates the bearer token and stores the resolved user id in
// the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		if !strings.HasPrefix(header, "Bearer ") {
			a.reject(ctx)
			return
		}

		userID, err := a.session.Validate(ctx.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.log.Debug("session validation failed", "error", err)
			a.reject(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), UserIDKey, userID)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) reject(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("failed to write unauthorized response", "error", err)
	}
}

// Token returns the raw bearer token of the request, if any.
func Token(ctx huma.Context) string {
	header := ctx.Header("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
