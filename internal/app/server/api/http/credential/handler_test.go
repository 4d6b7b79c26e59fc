package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"credvault/internal/app/server/api/http/middleware/auth"
	"credvault/internal/domain/credential"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID, clientID string) ([]credential.Credential, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]credential.Credential), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, userID, credentialID string) (*credential.Credential, error) {
	args := m.Called(ctx, userID, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID string, req credential.CreateRequest) (*credential.Credential, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID, credentialID string, req credential.UpdateRequest) (*credential.Credential, error) {
	args := m.Called(ctx, userID, credentialID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockService) UpdateVisibility(ctx context.Context, userID, credentialID string, req credential.VisibilityRequest) (*credential.Credential, error) {
	args := m.Called(ctx, userID, credentialID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, userID, credentialID string) error {
	args := m.Called(ctx, userID, credentialID)
	return args.Error(0)
}

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_List(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(mockService, slog.Default(), nil)

	mockService.On("List", mock.Anything, "user-1", "cl-1").
		Return([]credential.Credential{{ID: "c-1", Name: "Prod Postgres"}}, nil)

	out, err := h.list(authedCtx("user-1"), &listInput{ClientID: "cl-1"})

	assert.NoError(t, err)
	assert.Len(t, out.Body, 1)
}

func TestHandler_List_Unauthenticated(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(mockService, slog.Default(), nil)

	_, err := h.list(context.Background(), &listInput{})

	assert.Error(t, err)
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_CreateEnv(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(mockService, slog.Default(), nil)

	vars := []credential.EnvVar{{Key: "DB_HOST", Value: "localhost"}}
	mockService.On("Create", mock.Anything, "user-1",
		mock.MatchedBy(func(req credential.CreateRequest) bool {
			return req.ServiceType == credential.TypeEnv && len(req.EnvVars) == 1
		})).
		Return(&credential.Credential{ID: "c-1", ServiceType: credential.TypeEnv}, nil)

	out, err := h.createEnv(authedCtx("user-1"), &createEnvInput{Body: CreateEnvRequest{
		ClientID:    "cl-1",
		Name:        "Backend env",
		Environment: "production",
		EnvVars:     vars,
	}})

	assert.NoError(t, err)
	assert.Equal(t, "c-1", out.Body.ID)
}

func TestHandler_Env(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(mockService, slog.Default(), nil)

	mockService.On("Get", mock.Anything, "user-1", "c-1").
		Return(&credential.Credential{
			ID:          "c-1",
			ServiceType: credential.TypeEnv,
			Username:    "DB_HOST, DB_PASS",
			Password:    `{"DB_HOST":"localhost","DB_PASS":"p@ss"}`,
		}, nil)

	out, err := h.env(authedCtx("user-1"), &envInput{ID: "c-1"})

	assert.NoError(t, err)
	assert.Equal(t, []credential.EnvVar{
		{Key: "DB_HOST", Value: "localhost"},
		{Key: "DB_PASS", Value: "p@ss"},
	}, out.Body.EnvVars)
}

func TestHandler_Env_WrongType(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(mockService, slog.Default(), nil)

	mockService.On("Get", mock.Anything, "user-1", "c-2").
		Return(&credential.Credential{ID: "c-2", ServiceType: credential.TypeDatabase}, nil)

	_, err := h.env(authedCtx("user-1"), &envInput{ID: "c-2"})

	assert.Error(t, err)
}

func TestHandler_Delete_Forbidden(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(mockService, slog.Default(), nil)

	mockService.On("Delete", mock.Anything, "user-1", "c-3").
		Return(credential.ErrForbidden)

	_, err := h.delete(authedCtx("user-1"), &deleteInput{ID: "c-3"})

	assert.Error(t, err)
}

func TestHandler_Visibility(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(mockService, slog.Default(), nil)

	req := credential.VisibilityRequest{
		Visibility:     credential.VisibilityRestricted,
		AllowedUserIDs: []string{"user-2"},
	}
	mockService.On("UpdateVisibility", mock.Anything, "user-1", "c-1", req).
		Return(&credential.Credential{ID: "c-1", ViewerCount: 1}, nil)

	out, err := h.visibility(authedCtx("user-1"), &visibilityInput{ID: "c-1", Body: req})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Body.ViewerCount)
}
