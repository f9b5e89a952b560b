package services_test

import (
	"context"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/stretchr/testify/mock"
)

var mockAnyString = mock.AnythingOfType("string")

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash, name string, role models.Role, imageURL string) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash, name, role, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int, name string, profile models.Profile) (*models.User, error) {
	args := m.Called(ctx, id, name, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) RoleOf(ctx context.Context, id int) (models.Role, bool) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Role), args.Bool(1)
}

func (m *MockUserRepository) Version() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}

// MockImageRepository is a mock implementation of ImageRepositoryInterface
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Save(ctx context.Context, userID int, payload string) error {
	args := m.Called(ctx, userID, payload)
	return args.Error(0)
}

func (m *MockImageRepository) Load(ctx context.Context, userID int) (string, bool, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Bool(1), args.Error(2)
}
