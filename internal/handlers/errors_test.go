package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guindo/fireplan-api/internal/services"
	"github.com/guindo/fireplan-api/internal/validation"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        &validation.Error{Fields: []validation.FieldError{{Field: "age", Message: "age must be at least 16"}}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"error":"Invalid profile","details":[{"field":"age","message":"age must be at least 16"}]}`,
		},
		{
			name:       "unknown type",
			err:        fmt.Errorf("%w: %q", services.ErrUnknownAnalysisType, "astrology"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"` + invalidTypeMessage + `"}`,
		},
		{
			name:       "not found",
			err:        apperrors.NotFoundError("analysis"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Analysis not found"}`,
		},
		{
			name:       "history disabled",
			err:        apperrors.UnavailableError("analysis history"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"Analysis history is not enabled"}`,
		},
		{
			name:       "provider failure",
			err:        providerError("fire"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"AI analysis failed"}`,
		},
		{
			name:       "prompt build failure hides detail",
			err:        fmt.Errorf("%w: %w", apperrors.InternalError("failed to build roi prompt"), errors.New("template: roi:3: bad field")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Len(t, c.Errors, 1)
		})
	}
}
