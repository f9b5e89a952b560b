package handlers

import (
	"net/http"
	"strconv"

	"github.com/getmentor/mentor-match-api/internal/middleware"
	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles the caller's profile and avatar images
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// sessionOrAbort returns the caller session or writes 401
func sessionOrAbort(c *gin.Context) (*models.Session, bool) {
	session, err := middleware.GetSession(c)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, http.StatusUnauthorized, "Could not validate credentials", err)
		return nil, false
	}
	return session, true
}

// Me handles GET /api/me
// @Summary Current user
// @Description Returns the caller's user record and profile.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /me [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	resp, err := h.service.Me(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfile handles PUT /api/profile
// @Summary Update profile
// @Description Replaces the caller's profile. A base64 image, if present, becomes the avatar.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Profile"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 413 {object} handlers.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), session, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetImage handles GET /api/images/:role/:id
// @Summary Fetch avatar
// @Description Returns the stored avatar as JPEG, or redirects to the role placeholder.
// @Tags profile
// @Accept json
// @Produce jpeg
// @Security BearerAuth
// @Param role path string true "mentor or mentee"
// @Param id path int true "User ID"
// @Success 200 {file} binary "Avatar bytes"
// @Success 307 "Redirect to placeholder"
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /images/{role}/{id} [get]
func (h *ProfileHandler) GetImage(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	avatar, err := h.service.GetAvatar(c.Request.Context(), c.Param("role"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if avatar.RedirectURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, avatar.RedirectURL)
		return
	}

	c.Data(http.StatusOK, avatar.ContentType, avatar.Data)
}
