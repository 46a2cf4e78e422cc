package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIVersion is reported by GET /
const APIVersion = "1.0.0"

type HealthHandler struct {
	model        string
	aiConfigured bool
	endpoints    map[string]string
}

// NewHealthHandler creates the root and health handlers. model is reported by
// GET /; historyEnabled adds the history routes to the root listing.
func NewHealthHandler(model string, aiConfigured, historyEnabled bool) *HealthHandler {
	endpoints := map[string]string{
		"health":      "/health",
		"analyze":     "/api/analyze (POST)",
		"analyze_all": "/api/analyze-all (POST)",
	}
	if historyEnabled {
		endpoints["analyses"] = "/api/analyses (GET)"
	}

	return &HealthHandler{
		model:        model,
		aiConfigured: aiConfigured,
		endpoints:    endpoints,
	}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "FIRE Planning API",
		"version":   APIVersion,
		"model":     h.model,
		"endpoints": h.endpoints,
	})
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"status":              "healthy",
		"groq_api_configured": h.aiConfigured,
	})
}
