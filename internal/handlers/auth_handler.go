package handlers

import (
	"net/http"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup and login
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /api/signup
// @Summary Register a user
// @Description Creates a mentor or mentee account with a default profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup payload"
// @Success 201 {object} models.SignupResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 429 {object} handlers.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.service.Signup(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SignupResponse{Message: "User created successfully"})
}

// Login handles POST /api/login
// @Summary Log in
// @Description Verifies credentials and returns a session token valid for one hour.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 429 {object} handlers.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
