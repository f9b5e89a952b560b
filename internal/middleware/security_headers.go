package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds security headers to all HTTP responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()")

		// Session-bound JSON must not be cached; avatars may be cached privately
		if c.Request.Method == "GET" && strings.HasPrefix(c.Request.URL.Path, "/api/images/") {
			c.Header("Cache-Control", "private, max-age=300")
		} else {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}

