package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/getmentor/mentor-match-api/internal/repository"
	"github.com/getmentor/mentor-match-api/pkg/objectstore"
	"github.com/getmentor/mentor-match-api/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var noRetry = retry.Config{}

func fastRetry() retry.Config {
	return retry.Config{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
}

func TestMemoryImageRepository(t *testing.T) {
	repo := repository.NewMemoryImageRepository()
	ctx := context.Background()

	_, found, err := repo.Load(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Save(ctx, 1, "aGVsbG8="))
	require.NoError(t, repo.Save(ctx, 1, "d29ybGQ="))

	payload, found, err := repo.Load(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "d29ybGQ=", payload)
}

func TestObjectImageRepository_Save(t *testing.T) {
	storage := new(MockObjectStorage)
	repo := repository.NewObjectImageRepository(storage, noRetry)
	ctx := context.Background()

	storage.On("Put", ctx, "avatars/5", []byte("data:image/jpeg;base64,aGk="), "text/plain").Return(nil).Once()

	require.NoError(t, repo.Save(ctx, 5, "data:image/jpeg;base64,aGk="))
	storage.AssertExpectations(t)
}

func TestObjectImageRepository_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("Get", ctx, "avatars/5").Return([]byte("aGk="), nil).Once()

		payload, found, err := repository.NewObjectImageRepository(storage, noRetry).Load(ctx, 5)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "aGk=", payload)
		storage.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("Get", ctx, "avatars/6").Return(nil, objectstore.ErrObjectNotFound).Once()

		_, found, err := repository.NewObjectImageRepository(storage, noRetry).Load(ctx, 6)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("storage failure", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("Get", ctx, "avatars/7").Return(nil, errors.New("connection reset")).Once()

		_, found, err := repository.NewObjectImageRepository(storage, noRetry).Load(ctx, 7)
		assert.Error(t, err)
		assert.False(t, found)
	})

	t.Run("transient failure is retried", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("Get", ctx, "avatars/8").Return(nil, errors.New("connection reset")).Once()
		storage.On("Get", ctx, "avatars/8").Return([]byte("aGk="), nil).Once()

		payload, found, err := repository.NewObjectImageRepository(storage, fastRetry()).Load(ctx, 8)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "aGk=", payload)
		storage.AssertExpectations(t)
	})

	t.Run("missing object is not retried", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("Get", ctx, "avatars/9").Return(nil, objectstore.ErrObjectNotFound).Once()

		_, found, err := repository.NewObjectImageRepository(storage, fastRetry()).Load(ctx, 9)
		require.NoError(t, err)
		assert.False(t, found)
		storage.AssertNumberOfCalls(t, "Get", 1)
	})
}

func TestObjectImageRepository_SaveGivesUp(t *testing.T) {
	storage := new(MockObjectStorage)
	ctx := context.Background()
	storage.On("Put", ctx, "avatars/3", []byte("aGk="), "text/plain").Return(errors.New("timeout"))

	err := repository.NewObjectImageRepository(storage, fastRetry()).Save(ctx, 3, "aGk=")
	assert.Error(t, err)
	storage.AssertNumberOfCalls(t, "Put", 3)
}
