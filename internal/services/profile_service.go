package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/getmentor/mentor-match-api/config"
	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/repository"
	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
	"github.com/getmentor/mentor-match-api/pkg/logger"
	"github.com/getmentor/mentor-match-api/pkg/metrics"
	"go.uber.org/zap"
)

// Avatar is either decoded image bytes or a placeholder to redirect to
type Avatar struct {
	Data        []byte
	ContentType string
	RedirectURL string
}

// ProfileService handles profile reads, updates and avatar fetches
type ProfileService struct {
	users  repository.UserRepositoryInterface
	images repository.ImageRepositoryInterface
	config *config.Config
}

// NewProfileService creates a new ProfileService
func NewProfileService(users repository.UserRepositoryInterface, images repository.ImageRepositoryInterface, cfg *config.Config) *ProfileService {
	return &ProfileService{
		users:  users,
		images: images,
		config: cfg,
	}
}

// Me returns the caller's user record and profile
func (s *ProfileService) Me(ctx context.Context, session *models.Session) (*models.UserResponse, error) {
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// UpdateProfile replaces the caller's profile. The avatar, if present, is
// stored before the profile so a failed upload leaves the profile unchanged.
func (s *ProfileService) UpdateProfile(ctx context.Context, session *models.Session, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	role := string(session.Role)

	if req.ID != 0 && req.ID != session.UserID {
		metrics.ProfileUpdates.WithLabelValues(role, "invalid").Inc()
		return nil, apperrors.InvalidInputError("id", "does not match the authenticated user")
	}
	if req.Role != "" && req.Role != session.Role {
		metrics.ProfileUpdates.WithLabelValues(role, "invalid").Inc()
		return nil, apperrors.InvalidInputError("role", "does not match the authenticated user")
	}

	if req.Image != nil && *req.Image != "" {
		if err := s.images.Save(ctx, session.UserID, *req.Image); err != nil {
			metrics.ProfileUpdates.WithLabelValues(role, "error").Inc()
			logger.Error("Failed to store avatar",
				zap.Int("user_id", session.UserID),
				zap.Error(err))
			return nil, err
		}
	}

	profile := models.NewProfile(session.Role, models.ProfileBase{
		Name:     req.Name,
		Bio:      req.Bio,
		ImageURL: models.ImagePath(session.Role, session.UserID),
	}, req.Skills)

	user, err := s.users.UpdateProfile(ctx, session.UserID, req.Name, profile)
	if err != nil {
		metrics.ProfileUpdates.WithLabelValues(role, "error").Inc()
		return nil, err
	}

	metrics.ProfileUpdates.WithLabelValues(role, "success").Inc()
	logger.Info("Profile updated",
		zap.Int("user_id", user.ID),
		zap.String("role", role),
		zap.Int("skills", len(models.SkillsOf(user.Profile))))

	resp := user.ToResponse()
	return &resp, nil
}

// GetAvatar decodes the stored avatar of userID. A missing or undecodable
// avatar yields the placeholder for role.
func (s *ProfileService) GetAvatar(ctx context.Context, role string, userID int) (*Avatar, error) {
	payload, found, err := s.images.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load avatar: %w", err)
	}

	if found {
		data, decodeErr := decodeImage(payload)
		if decodeErr == nil {
			metrics.AvatarFetches.WithLabelValues("image").Inc()
			return &Avatar{Data: data, ContentType: "image/jpeg"}, nil
		}
		logger.Warn("Stored avatar is not valid base64",
			zap.Int("user_id", userID),
			zap.Error(decodeErr))
	}

	metrics.AvatarFetches.WithLabelValues("placeholder").Inc()
	return &Avatar{RedirectURL: placeholderFor(s.config, role)}, nil
}

// decodeImage strips an optional data URI prefix and decodes base64
func decodeImage(payload string) ([]byte, error) {
	if i := strings.Index(payload, ","); i >= 0 {
		payload = payload[i+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
}
