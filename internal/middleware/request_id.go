package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is read from the request and echoed on the response
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// maxRequestIDLength caps client supplied ids before they reach the logs
const maxRequestIDLength = 128

// RequestIDMiddleware tags each request with an id, reusing the client's
// X-Request-ID when it is present and short enough
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// GetRequestID returns the id set by RequestIDMiddleware, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
