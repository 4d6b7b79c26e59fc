package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	u, err := service.Register(context.Background(), "Alice Smith", "Alice@Example.com ", "Str0ngPass")

	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, DefaultRole, u.Role)
	assert.NotEqual(t, "Str0ngPass", u.Password)
	mockRepo.AssertExpectations(t)
}

func TestService_Register_EmailTaken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&User{ID: "user-1", Email: "alice@example.com"}, nil)

	_, err := service.Register(context.Background(), "Alice Smith", "alice@example.com", "Str0ngPass")

	assert.ErrorIs(t, err, ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_WeakPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	_, err := service.Register(context.Background(), "Alice Smith", "alice@example.com", "short")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Authenticate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	hash, _ := bcrypt.GenerateFromPassword([]byte("Str0ngPass"), bcrypt.MinCost)
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&User{ID: "user-1", Email: "alice@example.com", Password: string(hash)}, nil)

	u, err := service.Authenticate(context.Background(), "alice@example.com", "Str0ngPass")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)

	_, err = service.Authenticate(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}

func TestService_Authenticate_UnknownEmail(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrNotFound)

	_, err := service.Authenticate(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}
