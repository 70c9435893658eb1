package handlers

import (
	"errors"
	"net/http"

	apperrors "taskforge-backend/internal/errors"
	"taskforge-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// respondError maps the error taxonomy to HTTP status codes in one place so
// the per-endpoint mappings cannot drift. Unclassified errors answer 500
// without leaking store internals.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err),
		errors.Is(err, apperrors.ErrInvalidTaskStatus),
		errors.Is(err, apperrors.ErrInvalidTaskPriority),
		errors.Is(err, apperrors.ErrInvalidTeamRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperrors.IsAlreadyExists(err),
		errors.Is(err, apperrors.ErrCodeGenerationExhausted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.WithContext(c).WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
