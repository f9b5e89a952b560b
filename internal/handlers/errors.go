package handlers

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, ErrorResponse{Error: message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details []ValidationError, err error) { //nolint:unparam
	attachError(c, err)
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// statusFor maps application error kinds to HTTP status codes
func statusFor(err error) (int, error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, apperrors.ErrUnauthenticated
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, apperrors.ErrForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, apperrors.ErrNotFound
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, apperrors.ErrInvalidInput
	case apperrors.IsClientError(err):
		return http.StatusBadRequest, nil
	default:
		return http.StatusInternalServerError, nil
	}
}

// respondServiceError maps a service error to its status code. Client errors
// carry their message; anything else is reported as an internal error.
func respondServiceError(c *gin.Context, err error) {
	status, kind := statusFor(err)
	if status == http.StatusInternalServerError {
		respondError(c, status, "Internal server error", err)
		return
	}

	message := err.Error()
	if kind != nil {
		message = strings.TrimSuffix(message, ": "+kind.Error())
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	respondError(c, status, message, err)
}

// respondBindError reports a request that failed to bind or validate
func respondBindError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(validationErrs), err)
		return
	}

	respondError(c, http.StatusBadRequest, "Invalid request body", err)
}
