package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/services"
	"github.com/gin-gonic/gin"
)

// MatchRequestHandler handles match request endpoints
type MatchRequestHandler struct {
	service services.MatchRequestServiceInterface
}

// NewMatchRequestHandler creates a new MatchRequestHandler
func NewMatchRequestHandler(service services.MatchRequestServiceInterface) *MatchRequestHandler {
	return &MatchRequestHandler{service: service}
}

// Create handles POST /api/match-requests
// @Summary Create match request
// @Description Sends a pending request from the calling mentee to a mentor.
// @Tags match-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMatchRequestPayload true "Match request"
// @Success 200 {object} models.MatchRequest
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /match-requests [post]
func (h *MatchRequestHandler) Create(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	var req models.CreateMatchRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), session, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// Incoming handles GET /api/match-requests/incoming
// @Summary Incoming match requests
// @Description Lists every request addressed to the calling mentor.
// @Tags match-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MatchRequest
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /match-requests/incoming [get]
func (h *MatchRequestHandler) Incoming(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	requests, err := h.service.Incoming(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Outgoing handles GET /api/match-requests/outgoing
// @Summary Outgoing match requests
// @Description Lists every request created by the calling mentee, without messages.
// @Tags match-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OutgoingMatchRequest
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /match-requests/outgoing [get]
func (h *MatchRequestHandler) Outgoing(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	requests, err := h.service.Outgoing(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Accept handles PUT /api/match-requests/:id/accept
// @Summary Accept match request
// @Description Accepts a request addressed to the calling mentor and rejects the mentor's other pending requests.
// @Tags match-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match request ID"
// @Success 200 {object} models.MatchRequest
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /match-requests/{id}/accept [put]
func (h *MatchRequestHandler) Accept(c *gin.Context) {
	h.transition(c, h.service.Accept)
}

// Reject handles PUT /api/match-requests/:id/reject
// @Summary Reject match request
// @Description Rejects a request addressed to the calling mentor.
// @Tags match-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match request ID"
// @Success 200 {object} models.MatchRequest
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /match-requests/{id}/reject [put]
func (h *MatchRequestHandler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject)
}

// Cancel handles DELETE /api/match-requests/:id
// @Summary Cancel match request
// @Description Cancels a request created by the calling mentee.
// @Tags match-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match request ID"
// @Success 200 {object} models.MatchRequest
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /match-requests/{id} [delete]
func (h *MatchRequestHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

type transitionFunc func(ctx context.Context, session *models.Session, requestID int) (*models.MatchRequest, error)

func (h *MatchRequestHandler) transition(c *gin.Context, apply transitionFunc) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil || requestID <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid request ID", err)
		return
	}

	updated, err := apply(c.Request.Context(), session, requestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
