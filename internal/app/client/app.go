package client

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"credvault/internal/app/client/config"
	clientdom "credvault/internal/domain/client"
	"credvault/internal/domain/credential"
	"credvault/internal/domain/user"
)

// App is the CLI-side facade over the HTTP API and the local cache.
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	cache      *SQLiteCache
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := newHTTPClient(cfg, log)

	cache, err := NewSQLiteCache(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	app := &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		cache:      cache,
	}

	if token, err := app.LoadToken(); err == nil && token != "" {
		httpCl.SetToken(token)
		log.Debug("token loaded from file")
	}

	return app, nil
}

func (a *App) Close() error {
	return a.cache.Close()
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

func (a *App) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	resp, err := a.httpClient.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	a.httpClient.SetToken(resp.Token)
	if err := a.SaveToken(resp.Token); err != nil {
		a.log.Warn("failed to save token", "error", err)
	}
	return &resp.User, nil
}

func (a *App) Login(ctx context.Context, email, password string) (*user.User, error) {
	resp, err := a.httpClient.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	a.httpClient.SetToken(resp.Token)
	if err := a.SaveToken(resp.Token); err != nil {
		a.log.Warn("failed to save token", "error", err)
	}
	return &resp.User, nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.httpClient.Logout(ctx); err != nil {
		a.log.Warn("server-side logout failed", "error", err)
	}
	a.httpClient.SetToken("")
	return a.ClearToken()
}

// ListClients fetches from the server, falling back to the local cache when
// the server is unreachable.
func (a *App) ListClients(ctx context.Context) ([]clientdom.Client, bool, error) {
	clients, err := a.httpClient.ListClients(ctx)
	if err != nil {
		a.log.Debug("falling back to cached clients", "error", err)
		cached, cacheErr := a.cache.LoadClients()
		if cacheErr != nil || len(cached) == 0 {
			return nil, false, err
		}
		return cached, true, nil
	}

	if err := a.cache.SaveClients(clients); err != nil {
		a.log.Warn("failed to cache clients", "error", err)
	}
	return clients, false, nil
}

// ListCredentials mirrors ListClients: live list, cache fallback. The bool
// result reports whether the data came from the cache.
func (a *App) ListCredentials(ctx context.Context, clientID string) ([]credential.Credential, bool, error) {
	creds, err := a.httpClient.ListCredentials(ctx, clientID)
	if err != nil {
		a.log.Debug("falling back to cached credentials", "error", err)
		cached, cacheErr := a.cache.LoadCredentials(clientID)
		if cacheErr != nil || len(cached) == 0 {
			return nil, false, err
		}
		return cached, true, nil
	}

	if clientID != "" {
		if err := a.httpClient.TouchClientAccess(ctx, clientID); err != nil {
			a.log.Debug("failed to record client access", "error", err)
		}
	}
	if err := a.cache.SaveCredentials(clientID, creds); err != nil {
		a.log.Warn("failed to cache credentials", "error", err)
	}
	return creds, false, nil
}

func (a *App) GetCredential(ctx context.Context, id string) (*credential.Credential, error) {
	return a.httpClient.GetCredential(ctx, id)
}

func (a *App) GetCredentialEnv(ctx context.Context, id string) ([]credential.EnvVar, error) {
	return a.httpClient.GetCredentialEnv(ctx, id)
}

func (a *App) SaveToken(token string) error {
	return os.WriteFile(a.config.TokenPath, []byte(token), 0600)
}

func (a *App) LoadToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *App) ClearToken() error {
	err := os.Remove(a.config.TokenPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (a *App) IsAuthenticated() bool {
	return a.httpClient.token != ""
}
