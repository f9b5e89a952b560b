package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/getmentor/mentor-match-api/config"
	"github.com/getmentor/mentor-match-api/internal/cache"
	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/repository"
	"github.com/getmentor/mentor-match-api/internal/services"
	"github.com/getmentor/mentor-match-api/pkg/jwt"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			JWTSecret:   "test-secret",
			JWTIssuer:   "mentor-mentee-app",
			JWTAudience: "mentor-mentee-users",
			TTLMinutes:  60,
		},
		Matching: config.MatchingConfig{StrictTransitions: true},
		Images: config.ImagesConfig{
			DefaultMentorURL: config.DefaultMentorImageURL,
			DefaultMenteeURL: config.DefaultMenteeImageURL,
		},
	}
}

func testTokenManager(cfg *config.Config) *jwt.TokenManager {
	return jwt.NewTokenManager(jwt.Options{
		Secret:   cfg.Session.JWTSecret,
		Issuer:   cfg.Session.JWTIssuer,
		Audience: cfg.Session.JWTAudience,
		TTL:      time.Duration(cfg.Session.TTLMinutes) * time.Minute,
	})
}

// app wires the real in-memory stores behind every service
type app struct {
	cfg      *config.Config
	users    *repository.UserRepository
	images   *repository.MemoryImageRepository
	auth     *services.AuthService
	profiles *services.ProfileService
	mentors  *services.MentorService
	requests *services.MatchRequestService
}

func newApp(t *testing.T) *app {
	t.Helper()
	cfg := testConfig()
	users := repository.NewUserRepository()
	images := repository.NewMemoryImageRepository()
	ledger := repository.NewMatchRequestRepository(users, cfg.Matching.StrictTransitions)

	return &app{
		cfg:      cfg,
		users:    users,
		images:   images,
		auth:     services.NewAuthService(users, testTokenManager(cfg), cfg),
		profiles: services.NewProfileService(users, images, cfg),
		mentors:  services.NewMentorService(users, cache.NewDirectoryCache(60)),
		requests: services.NewMatchRequestService(ledger),
	}
}

// signup registers a user and returns its session
func (a *app) signup(t *testing.T, email, name string, role models.Role) *models.Session {
	t.Helper()
	ctx := context.Background()

	_, err := a.auth.Signup(ctx, &models.SignupRequest{Email: email, Password: "pw-" + name, Name: name, Role: role})
	require.NoError(t, err)

	login, err := a.auth.Login(ctx, &models.LoginRequest{Email: email, Password: "pw-" + name})
	require.NoError(t, err)

	session, err := a.auth.ResolveSession(ctx, login.Token)
	require.NoError(t, err)
	return session
}
