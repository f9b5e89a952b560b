package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/gin-gonic/gin"
)

// SessionContextKey is the key used to store the caller session in context
const SessionContextKey = "session"

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionResolver turns a bearer token into a live session
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.Session, error)
}

func unauthorized(c *gin.Context, err error) {
	_ = c.Error(err) //nolint:errcheck
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// SessionMiddleware validates the bearer token and adds the session to context
func SessionMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, fmt.Errorf("missing bearer token"))
			return
		}

		session, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, fmt.Errorf("invalid session token: %w", err))
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// GetSession extracts the session from context
func GetSession(c *gin.Context) (*models.Session, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.Session)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}
