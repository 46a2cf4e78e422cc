package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Healthcheck(t *testing.T) {
	tests := []struct {
		name         string
		aiConfigured bool
		want         string
	}{
		{"configured", true, `{"status":"healthy","groq_api_configured":true}`},
		{"not configured", false, `{"status":"healthy","groq_api_configured":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler("llama-3.3-70b-versatile", tt.aiConfigured, false)
			router := gin.New()
			router.GET("/health", handler.Healthcheck)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/health", http.NoBody)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, "no-cache, no-store, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestHealthHandler_Root(t *testing.T) {
	router := gin.New()
	router.GET("/", NewHealthHandler("llama-3.3-70b-versatile", true, true).Root)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message   string            `json:"message"`
		Version   string            `json:"version"`
		Model     string            `json:"model"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FIRE Planning API", body.Message)
	assert.Equal(t, "1.0.0", body.Version)
	assert.Equal(t, "llama-3.3-70b-versatile", body.Model)
	assert.Equal(t, "/health", body.Endpoints["health"])
	assert.Equal(t, "/api/analyze (POST)", body.Endpoints["analyze"])
	assert.Contains(t, body.Endpoints, "analyses")
}

func TestHealthHandler_RootWithoutHistory(t *testing.T) {
	router := gin.New()
	router.GET("/", NewHealthHandler("llama-3.3-70b-versatile", true, false).Root)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", http.NoBody))

	assert.NotContains(t, w.Body.String(), "/api/analyses")
}
