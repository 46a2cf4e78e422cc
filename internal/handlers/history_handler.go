package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guindo/fireplan-api/internal/services"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
)

const missingOwnerMessage = "X-User-ID header is required"

// HistoryHandler serves saved batch runs. Callers only see runs saved under
// their own X-User-ID.
type HistoryHandler struct {
	service services.HistoryServiceInterface
}

func NewHistoryHandler(service services.HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// ListAnalyses handles GET /api/analyses?limit=
func (h *HistoryHandler) ListAnalyses(c *gin.Context) {
	owner := requestOwner(c)
	if owner == "" {
		respondError(c, http.StatusBadRequest, missingOwnerMessage, apperrors.InvalidInputError("owner", "required"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = n
	}

	resp, err := h.service.ListAnalyses(c.Request.Context(), owner, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetAnalysis handles GET /api/analyses/:id
func (h *HistoryHandler) GetAnalysis(c *gin.Context) {
	owner := requestOwner(c)
	if owner == "" {
		respondError(c, http.StatusBadRequest, missingOwnerMessage, apperrors.InvalidInputError("owner", "required"))
		return
	}

	rec, err := h.service.GetAnalysis(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
