package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Client), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id string) (*Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockRepository) GetByName(ctx context.Context, name string) (*Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c *Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, c *Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) TouchAccess(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetByName", mock.Anything, "Acme Corp").Return(nil, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*client.Client")).Return(nil)

	created, err := service.Create(context.Background(), CreateRequest{
		Name:        "Acme Corp",
		Description: "main account",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "AC", created.Initials)
	assert.Contains(t, palette, created.Color)
	assert.Equal(t, 0, created.CredentialCount)
	// a fresh client counts as just accessed
	if assert.NotNil(t, created.LastAccessed) {
		assert.Equal(t, created.CreatedAt, *created.LastAccessed)
	}
	mockRepo.AssertExpectations(t)
}

func TestService_Create_ProvidedInitialsAndColor(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetByName", mock.Anything, "Acme Corp").Return(nil, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*client.Client")).Return(nil)

	created, err := service.Create(context.Background(), CreateRequest{
		Name:     "Acme Corp",
		Initials: "ZZ",
		Color:    "#facade",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ZZ", created.Initials)
	assert.Equal(t, "#facade", created.Color)
}

func TestService_Create_InitialsTooLong(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetByName", mock.Anything, "Acme Corp").Return(nil, ErrNotFound)

	_, err := service.Create(context.Background(), CreateRequest{
		Name:     "Acme Corp",
		Initials: "ACME",
	})

	assert.ErrorIs(t, err, ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_BlankName(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	_, err := service.Create(context.Background(), CreateRequest{Name: "   "})

	assert.ErrorIs(t, err, ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateName(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("GetByName", mock.Anything, "Acme Corp").
		Return(&Client{ID: "cl-1", Name: "Acme Corp"}, nil)

	_, err := service.Create(context.Background(), CreateRequest{Name: "Acme Corp"})

	assert.ErrorIs(t, err, ErrDuplicate)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Update_RenameKeepsOwnName(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	existing := &Client{ID: "cl-1", Name: "Acme Corp", Initials: "AC"}
	mockRepo.On("Get", mock.Anything, "cl-1").Return(existing, nil)
	// renaming to its own current name is not a collision
	mockRepo.On("GetByName", mock.Anything, "Acme Corp").Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*client.Client")).Return(nil)

	name := "Acme Corp"
	updated, err := service.Update(context.Background(), "cl-1", UpdateRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
}

func TestService_Update_RenameRecomputesInitials(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Get", mock.Anything, "cl-1").
		Return(&Client{ID: "cl-1", Name: "Acme Corp", Initials: "AC"}, nil)
	mockRepo.On("GetByName", mock.Anything, "Globex").Return(nil, ErrNotFound)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*client.Client")).Return(nil)

	name := "Globex"
	updated, err := service.Update(context.Background(), "cl-1", UpdateRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "G", updated.Initials)
}

func TestService_TouchAccess_FailureOnlyLogged(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	var wg sync.WaitGroup
	wg.Add(1)
	mockRepo.On("TouchAccess", mock.Anything, "cl-1", mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { wg.Done() }).
		Return(errors.New("connection refused"))

	service.TouchAccess("cl-1")
	wg.Wait()

	mockRepo.AssertExpectations(t)
}

func TestDeriveInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Acme Corp", "AC"},
		{"acme", "A"},
		{"three word name", "TW"},
		{"  spaced   out  ", "SO"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveInitials(tt.name), tt.name)
	}
}

func TestPickColor_Deterministic(t *testing.T) {
	assert.Equal(t, PickColor("Acme Corp"), PickColor("Acme Corp"))
	assert.Contains(t, palette, PickColor("anything"))
}
