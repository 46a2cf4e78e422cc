package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/guindo/fireplan-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Level: "debug", Environment: "development"}); err != nil {
		panic(err)
	}
}

// stubGenerator answers every label with "<label> report" unless the label
// is listed in fail
type stubGenerator struct {
	mu     sync.Mutex
	calls  []string
	fail   map[string]error
	output string
}

func (g *stubGenerator) Generate(_ context.Context, _, _, label string) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, label)
	g.mu.Unlock()

	if err, ok := g.fail[label]; ok {
		return "", err
	}
	if g.output != "" {
		return g.output, nil
	}
	return label + " report", nil
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func validProfileJSON() map[string]any {
	return map[string]any{
		"name":             "Ana Silva",
		"age":              24,
		"university":       "Universidade de Lisboa",
		"major":            "Computer Science",
		"location":         "Lisbon",
		"primary_industry": "Technology & Engineering",
		"retire_age":       "45",
	}
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	_ = json.Unmarshal(w.Body.Bytes(), &v)
	return v
}
