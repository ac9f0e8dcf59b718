package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		allowed  string
		origin   string
		expected string
	}{
		{"origem listada", "http://localhost:3000, https://app.avantpro.com", "https://app.avantpro.com", "https://app.avantpro.com"},
		{"origem não listada", "http://localhost:3000", "https://evil.com", ""},
		{"curinga ecoa a origem", "*", "https://qualquer.com", "https://qualquer.com"},
		{"lista vazia nega tudo", "", "http://localhost:3000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.allowed))
			router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", tt.origin)
			router.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, got)
			}
		})
	}
}
