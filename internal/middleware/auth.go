package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
	"github.com/guindo/fireplan-api/pkg/logger"
	"go.uber.org/zap"
)

// APIKeyHeader carries the shared secret on protected routes
const APIKeyHeader = "X-API-Key"

// APIKeyAuthMiddleware checks the X-API-Key header against secret.
// An empty secret disables the check so local development needs no key.
func APIKeyAuthMiddleware(secret string) gin.HandlerFunc {
	if secret == "" {
		logger.Warn("API_SECRET_KEY not set, API key authentication disabled")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)

		if key == "" || !timingSafeCompare(key, secret) {
			// Same log line for both cases
			logger.Warn("Rejected API key",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)

			msg := "Invalid API key"
			if key == "" {
				msg = "Missing X-API-Key header"
			}
			_ = c.Error(apperrors.ErrUnauthorized)
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Next()
	}
}

func timingSafeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
