package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guindo/fireplan-api/internal/models"
	"github.com/guindo/fireplan-api/internal/services"
	"github.com/guindo/fireplan-api/pkg/logger"
	"go.uber.org/zap"
)

// OwnerHeader names the caller a batch run is saved and read back under
const OwnerHeader = "X-User-ID"

const maxOwnerLength = 128

// requestOwner returns the X-User-ID value, or "" when it is missing or
// oversized
func requestOwner(c *gin.Context) string {
	owner := c.GetHeader(OwnerHeader)
	if len(owner) > maxOwnerLength {
		logger.Warn("Ignoring oversized owner header", zap.Int("length", len(owner)))
		return ""
	}
	return owner
}

type AnalysisHandler struct {
	service services.AnalysisServiceInterface
}

func NewAnalysisHandler(service services.AnalysisServiceInterface) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Analyze handles POST /api/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Analyze(c.Request.Context(), req.Profile, req.AnalysisType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AnalyzeAll handles POST /api/analyze-all
func (h *AnalysisHandler) AnalyzeAll(c *gin.Context) {
	var req models.BatchAnalysisRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.AnalyzeAll(c.Request.Context(), req.Profile, requestOwner(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
