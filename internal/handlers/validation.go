package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guindo/fireplan-api/internal/models"
)

var invalidTypeMessage = "Invalid analysis_type. Must be one of: " + joinTypes(models.SingleAnalysisTypes)

func joinTypes(types []models.AnalysisType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// bindJSON decodes the request body into obj. On failure it writes a 413
// for oversized bodies or a 400 otherwise and returns false.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return false
	}

	respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", err.Error(), err)
	return false
}
