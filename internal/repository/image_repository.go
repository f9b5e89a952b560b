package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/getmentor/mentor-match-api/pkg/objectstore"
	"github.com/getmentor/mentor-match-api/pkg/retry"
)

// MemoryImageRepository keeps avatars for the lifetime of the process
type MemoryImageRepository struct {
	mu     sync.RWMutex
	images map[int]string
}

// NewMemoryImageRepository creates an empty in-memory avatar store
func NewMemoryImageRepository() *MemoryImageRepository {
	return &MemoryImageRepository{images: make(map[int]string)}
}

// Save stores or replaces the avatar of userID
func (r *MemoryImageRepository) Save(_ context.Context, userID int, payload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images[userID] = payload
	return nil
}

// Load returns the stored avatar of userID
func (r *MemoryImageRepository) Load(_ context.Context, userID int) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.images[userID]
	return payload, ok, nil
}

// ObjectStorage is the subset of the object store client used for avatars
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ObjectImageRepository keeps avatars in S3-compatible object storage
type ObjectImageRepository struct {
	storage ObjectStorage
	retry   retry.Config
}

// NewObjectImageRepository creates an avatar store backed by storage.
// Transient storage failures are retried; a missing object is not.
func NewObjectImageRepository(storage ObjectStorage, retryCfg retry.Config) *ObjectImageRepository {
	retryCfg.Retryable = func(err error) bool {
		return !errors.Is(err, objectstore.ErrObjectNotFound) &&
			!errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded)
	}
	return &ObjectImageRepository{storage: storage, retry: retryCfg}
}

func avatarKey(userID int) string {
	return fmt.Sprintf("avatars/%d", userID)
}

// Save uploads the raw payload as text; decoding happens on fetch
func (r *ObjectImageRepository) Save(ctx context.Context, userID int, payload string) error {
	_, err := retry.Do(ctx, r.retry, "avatar.put", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.storage.Put(ctx, avatarKey(userID), []byte(payload), "text/plain")
	})
	if err != nil {
		return fmt.Errorf("failed to store avatar: %w", err)
	}
	return nil
}

// Load downloads the stored payload; a missing object is not an error
func (r *ObjectImageRepository) Load(ctx context.Context, userID int) (string, bool, error) {
	body, err := retry.Do(ctx, r.retry, "avatar.get", func(ctx context.Context) ([]byte, error) {
		return r.storage.Get(ctx, avatarKey(userID))
	})
	if errors.Is(err, objectstore.ErrObjectNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load avatar: %w", err)
	}
	return string(body), true, nil
}
