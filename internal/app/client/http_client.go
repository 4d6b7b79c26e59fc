package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"

	"credvault/internal/app/client/config"
	clientdom "credvault/internal/domain/client"
	"credvault/internal/domain/credential"
	"credvault/internal/domain/user"
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func newHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:       log,
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "CredVault-Client/1.0",
	}
}

func (h *httpClient) SetToken(token string) {
	h.token = token
}

func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	return h.parseResponse(resp, nil)
}

type authResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (h *httpClient) Register(ctx context.Context, name, email, password string) (*authResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var out authResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) Login(ctx context.Context, email, password string) (*authResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var out authResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) ListClients(ctx context.Context) ([]clientdom.Client, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/clients", nil)
	if err != nil {
		return nil, err
	}

	var out []clientdom.Client
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpClient) TouchClientAccess(ctx context.Context, clientID string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/clients/"+url.PathEscape(clientID)+"/access", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) ListCredentials(ctx context.Context, clientID string) ([]credential.Credential, error) {
	path := "/api/v1/credentials"
	if clientID != "" {
		path += "?clientId=" + url.QueryEscape(clientID)
	}

	resp, err := h.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out []credential.Credential
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *httpClient) GetCredential(ctx context.Context, id string) (*credential.Credential, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/credentials/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var out credential.Credential
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) GetCredentialEnv(ctx context.Context, id string) ([]credential.EnvVar, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/credentials/"+url.PathEscape(id)+"/env", nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		EnvVars []credential.EnvVar `json:"envVars"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out.EnvVars, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	return h.client.Do(req)
}

func (h *httpClient) parseResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, &apiErr); err == nil {
			switch {
			case apiErr.Detail != "":
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Detail)
			case apiErr.Error != "":
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
			}
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
