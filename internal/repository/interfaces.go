package repository

import (
	"context"

	"github.com/getmentor/mentor-match-api/internal/models"
)

// UserRepositoryInterface defines the identity store operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, email, passwordHash, name string, role models.Role, imageURL string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, name string, profile models.Profile) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	RoleOf(ctx context.Context, id int) (models.Role, bool)
	Version() uint64
}

// ImageRepositoryInterface stores raw avatar payloads keyed by user id
type ImageRepositoryInterface interface {
	Save(ctx context.Context, userID int, payload string) error
	// Load returns found=false when no avatar is stored for userID
	Load(ctx context.Context, userID int) (payload string, found bool, err error)
}

// MatchRequestRepositoryInterface defines the match request ledger
type MatchRequestRepositoryInterface interface {
	Create(ctx context.Context, mentorID, menteeID int, message string) (*models.MatchRequest, error)
	Accept(ctx context.Context, requestID, mentorID int) (*AcceptResult, error)
	Reject(ctx context.Context, requestID, mentorID int) (*models.MatchRequest, error)
	Cancel(ctx context.Context, requestID, menteeID int) (*models.MatchRequest, error)
	Incoming(ctx context.Context, mentorID int) ([]*models.MatchRequest, error)
	Outgoing(ctx context.Context, menteeID int) ([]*models.MatchRequest, error)
}

// MentorLookup reports whether an id belongs to a mentor
type MentorLookup interface {
	RoleOf(ctx context.Context, id int) (models.Role, bool)
}
