package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guindo/fireplan-api/internal/services"
	"github.com/guindo/fireplan-api/internal/validation"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
	"github.com/guindo/fireplan-api/pkg/llm"
)

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
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError maps a service error onto a status code. Provider
// detail stays in the server log.
func respondServiceError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		respondErrorWithDetails(c, http.StatusUnprocessableEntity, "Invalid profile", verr.Fields, err)
	case errors.Is(err, services.ErrUnknownAnalysisType):
		respondError(c, http.StatusBadRequest, invalidTypeMessage, err)
	case errors.Is(err, apperrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "Analysis not found", err)
	case errors.Is(err, apperrors.ErrUnavailable):
		respondError(c, http.StatusServiceUnavailable, "Analysis history is not enabled", err)
	case errors.Is(err, llm.ErrProviderFailure):
		respondError(c, http.StatusInternalServerError, "AI analysis failed", err)
	case errors.Is(err, apperrors.ErrInternal):
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
