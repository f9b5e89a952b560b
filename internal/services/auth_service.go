package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/getmentor/mentor-match-api/config"
	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/repository"
	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
	"github.com/getmentor/mentor-match-api/pkg/jwt"
	"github.com/getmentor/mentor-match-api/pkg/logger"
	"github.com/getmentor/mentor-match-api/pkg/metrics"
	"github.com/getmentor/mentor-match-api/pkg/password"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password
var ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthenticated)

// AuthService handles signup, login and session resolution
type AuthService struct {
	users  repository.UserRepositoryInterface
	tokens *jwt.TokenManager
	config *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepositoryInterface, tokens *jwt.TokenManager, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		config: cfg,
	}
}

// placeholderFor returns the default avatar URL for role
func placeholderFor(cfg *config.Config, role string) string {
	if role == string(models.RoleMentor) {
		return cfg.Images.DefaultMentorURL
	}
	return cfg.Images.DefaultMenteeURL
}

// Signup registers a user with a default profile
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if !req.Role.Valid() {
		metrics.Signups.WithLabelValues(string(req.Role), "invalid").Inc()
		return nil, apperrors.InvalidInputError("role", "must be mentor or mentee")
	}

	hash, err := password.Hash(req.Password)
	if errors.Is(err, password.ErrTooLong) {
		metrics.Signups.WithLabelValues(string(req.Role), "invalid").Inc()
		return nil, apperrors.InvalidInputError("password", "must not exceed 72 bytes")
	}
	if err != nil {
		metrics.Signups.WithLabelValues(string(req.Role), "error").Inc()
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Email, hash, req.Name, req.Role, placeholderFor(s.config, string(req.Role)))
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			metrics.Signups.WithLabelValues(string(req.Role), "duplicate").Inc()
			logger.Warn("Signup with registered email", zap.String("role", string(req.Role)))
			return nil, err
		}
		metrics.Signups.WithLabelValues(string(req.Role), "error").Inc()
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.Signups.WithLabelValues(string(req.Role), "success").Inc()
	logger.Info("User signed up",
		zap.Int("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return user, nil
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.Logins.WithLabelValues("invalid_credentials").Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := password.Verify(req.Password, user.PasswordHash)
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		logger.Error("Stored password hash is unreadable",
			zap.Int("user_id", user.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		metrics.Logins.WithLabelValues("invalid_credentials").Inc()
		logger.Warn("Login with wrong password", zap.Int("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(strconv.Itoa(user.ID), user.Email, user.Name, string(user.Role))
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		logger.Error("Failed to issue session token", zap.Error(err))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	logger.Info("User logged in",
		zap.Int("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &models.LoginResponse{Token: token}, nil
}

// ResolveSession validates a bearer token and loads the live user it names.
// Role and name come from the stored user, not from the token.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		status := "invalid"
		if errors.Is(err, jwt.ErrExpiredToken) {
			status = "expired"
		}
		metrics.SessionValidations.WithLabelValues(status).Inc()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		metrics.SessionValidations.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: malformed subject", apperrors.ErrUnauthenticated)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		metrics.SessionValidations.WithLabelValues("unknown_user").Inc()
		return nil, fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthenticated)
	}

	metrics.SessionValidations.WithLabelValues("success").Inc()

	return &models.Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}
