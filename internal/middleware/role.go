package middleware

import (
	"fmt"
	"net/http"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose session role differs from role.
// Must run after SessionMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			unauthorized(c, err)
			return
		}

		if err := session.RequireRole(role); err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("Only %ss can perform this action", role)})
			return
		}

		c.Next()
	}
}
