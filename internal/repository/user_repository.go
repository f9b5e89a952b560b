package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/getmentor/mentor-match-api/internal/models"
	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
)

// UserRepository is the in-process identity store
type UserRepository struct {
	mu      sync.RWMutex
	nextID  int
	users   map[int]*models.User
	byEmail map[string]int
	// version is bumped on every write so readers can detect stale projections
	version uint64
}

// NewUserRepository creates an empty identity store
func NewUserRepository() *UserRepository {
	return &UserRepository{
		nextID:  1,
		users:   make(map[int]*models.User),
		byEmail: make(map[string]int),
	}
}

// Create inserts a user with its default profile.
// The email check and id allocation happen in one critical section.
func (r *UserRepository) Create(_ context.Context, email, passwordHash, name string, role models.Role, imageURL string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	user := &models.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		Profile:      models.NewProfile(role, models.ProfileBase{Name: name, ImageURL: imageURL}, nil),
	}
	r.nextID++
	r.users[user.ID] = user
	r.byEmail[email] = user.ID
	r.version++

	return user.Clone(), nil
}

// GetByID returns a copy of the user or ErrNotFound
func (r *UserRepository) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFoundError("user")
	}
	return user.Clone(), nil
}

// GetByEmail returns a copy of the user or ErrNotFound
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NotFoundError("user")
	}
	return r.users[id].Clone(), nil
}

// UpdateProfile replaces the profile and display name of a user.
// The profile variant must match the stored role.
func (r *UserRepository) UpdateProfile(_ context.Context, id int, name string, profile models.Profile) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFoundError("user")
	}
	if profile == nil || profile.ProfileRole() != user.Role {
		return nil, apperrors.InvalidInputError("role", "profile does not match user role")
	}

	user.Name = name
	user.Profile = profile.Clone()
	r.version++

	return user.Clone(), nil
}

// ListByRole returns copies of all users with role, ordered by id
func (r *UserRepository) ListByRole(_ context.Context, role models.Role) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		if user.Role == role {
			result = append(result, user.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// RoleOf returns the role of a user, ok=false when the id is unknown
func (r *UserRepository) RoleOf(_ context.Context, id int) (models.Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return "", false
	}
	return user.Role, true
}

// Version returns the current write counter of the store
func (r *UserRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
