package middleware

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guindo/fireplan-api/pkg/logger"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Level: "debug", Environment: "development"}); err != nil {
		panic(err)
	}

	goleak.VerifyTestMain(m)
}
