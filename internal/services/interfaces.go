package services

import (
	"context"

	"github.com/getmentor/mentor-match-api/internal/models"
)

// AuthServiceInterface defines signup, login and session resolution
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	ResolveSession(ctx context.Context, token string) (*models.Session, error)
}

// ProfileServiceInterface defines the interface for profile service operations
type ProfileServiceInterface interface {
	Me(ctx context.Context, session *models.Session) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, session *models.Session, req *models.UpdateProfileRequest) (*models.UserResponse, error)
	GetAvatar(ctx context.Context, role string, userID int) (*Avatar, error)
}

// MentorServiceInterface defines the mentor directory
type MentorServiceInterface interface {
	ListMentors(ctx context.Context, session *models.Session, query models.DirectoryQuery) ([]models.UserResponse, error)
}

// MatchRequestServiceInterface defines the match request lifecycle
type MatchRequestServiceInterface interface {
	Create(ctx context.Context, session *models.Session, req *models.CreateMatchRequestPayload) (*models.MatchRequest, error)
	Incoming(ctx context.Context, session *models.Session) ([]*models.MatchRequest, error)
	Outgoing(ctx context.Context, session *models.Session) ([]models.OutgoingMatchRequest, error)
	Accept(ctx context.Context, session *models.Session, requestID int) (*models.MatchRequest, error)
	Reject(ctx context.Context, session *models.Session, requestID int) (*models.MatchRequest, error)
	Cancel(ctx context.Context, session *models.Session, requestID int) (*models.MatchRequest, error)
}
