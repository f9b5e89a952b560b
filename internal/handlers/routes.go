package handlers

import (
	"github.com/getmentor/mentor-match-api/internal/middleware"
	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	jsonBodyLimit    = 100 * 1024
	profileBodyLimit = 10 * 1024 * 1024 // base64 avatars
)

// Routes bundles what RegisterRoutes mounts under /api
type Routes struct {
	Sessions      middleware.SessionResolver
	AuthLimiter   *middleware.RateLimiter
	APILimiter    *middleware.RateLimiter
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Mentors       *MentorHandler
	MatchRequests *MatchRequestHandler
}

// RegisterRoutes registers the public and session-protected API routes
func RegisterRoutes(api *gin.RouterGroup, r Routes) {
	api.POST("/signup", r.AuthLimiter.Middleware(), middleware.BodySizeLimitMiddleware(jsonBodyLimit), r.Auth.Signup)
	api.POST("/login", r.AuthLimiter.Middleware(), middleware.BodySizeLimitMiddleware(jsonBodyLimit), r.Auth.Login)

	authed := api.Group("")
	authed.Use(r.APILimiter.Middleware(), middleware.SessionMiddleware(r.Sessions))

	authed.GET("/me", r.Profile.Me)
	authed.PUT("/profile", middleware.BodySizeLimitMiddleware(profileBodyLimit), r.Profile.UpdateProfile)
	authed.GET("/images/:role/:id", r.Profile.GetImage)

	mentee := middleware.RequireRole(models.RoleMentee)
	mentor := middleware.RequireRole(models.RoleMentor)

	authed.GET("/mentors", mentee, r.Mentors.ListMentors)

	requests := authed.Group("/match-requests")
	requests.POST("", mentee, middleware.BodySizeLimitMiddleware(jsonBodyLimit), r.MatchRequests.Create)
	requests.GET("/incoming", mentor, r.MatchRequests.Incoming)
	requests.GET("/outgoing", mentee, r.MatchRequests.Outgoing)
	requests.PUT("/:id/accept", mentor, r.MatchRequests.Accept)
	requests.PUT("/:id/reject", mentor, r.MatchRequests.Reject)
	requests.DELETE("/:id", mentee, r.MatchRequests.Cancel)
}
