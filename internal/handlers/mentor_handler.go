package handlers

import (
	"net/http"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/services"
	"github.com/gin-gonic/gin"
)

// MentorHandler serves the mentor directory
type MentorHandler struct {
	service services.MentorServiceInterface
}

// NewMentorHandler creates a new MentorHandler
func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// ListMentors handles GET /api/mentors?skill=&order_by=
// @Summary List mentors
// @Description Lists mentors, optionally filtered by skill and sorted by name or skill. Mentees only.
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param skill query string false "Skill filter, case-insensitive"
// @Param order_by query string false "Sort key; id order otherwise" Enums(name, skill)
// @Success 200 {array} models.UserResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /mentors [get]
func (h *MentorHandler) ListMentors(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	var query models.DirectoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	mentors, err := h.service.ListMentors(c.Request.Context(), session, query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, mentors)
}
