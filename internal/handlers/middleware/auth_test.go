package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/logging"
)

type fakeAuthenticator struct {
	users map[string]*entities.User
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*entities.User, error) {
	if token == "explode" {
		return nil, errors.New("db down")
	}
	user, ok := f.users[token]
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}
	return user, nil
}

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := NewAuthMiddleware(fakeAuthenticator{users: map[string]*entities.User{
		"sales-token": {
			ID:          "u-sales",
			Role:        entities.RoleSales,
			Permissions: []entities.UserPermission{{Category: "customers", Action: "read"}},
		},
		"admin-token": {ID: "u-admin", Role: entities.RoleAdmin},
	}}, logging.NewNopLogger())

	router := gin.New()
	router.Use(NewI18nMiddleware(setupTestI18n(t)).DetectLanguage())

	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	protected := router.Group("", auth.RequireAuth())
	protected.GET("/customers", auth.RequirePermission(entities.PermissionCustomerView), ok)
	protected.GET("/banks", auth.RequirePermission(entities.PermissionBankView, entities.PermissionBankCreate), ok)
	protected.GET("/dashboard", auth.RequirePermission(entities.PermissionDashboardView), ok)
	protected.GET("/admin", auth.RequireRole(entities.RoleAdmin), ok)

	return router
}

func TestAuthMiddleware(t *testing.T) {
	router := setupAuthRouter(t)

	tests := []struct {
		name     string
		path     string
		header   string
		expected int
	}{
		{"sem token", "/customers", "", http.StatusUnauthorized},
		{"header malformado", "/customers", "Token sales-token", http.StatusUnauthorized},
		{"token desconhecido", "/customers", "Bearer nope", http.StatusUnauthorized},
		{"falha interna", "/customers", "Bearer explode", http.StatusInternalServerError},
		{"permissão concedida", "/customers", "Bearer sales-token", http.StatusNoContent},
		{"bearer minúsculo", "/customers", "bearer sales-token", http.StatusNoContent},
		{"permissão ausente", "/banks", "Bearer sales-token", http.StatusForbidden},
		{"dashboard para qualquer autenticado", "/dashboard", "Bearer admin-token", http.StatusNoContent},
		{"role admin exigido", "/admin", "Bearer sales-token", http.StatusForbidden},
		{"role admin presente", "/admin", "Bearer admin-token", http.StatusNoContent},
		{"token via query", "/customers?access_token=sales-token", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			if w.Code != tt.expected {
				t.Errorf("esperava status %d, obteve %d", tt.expected, w.Code)
			}
		})
	}
}

func TestAuthMiddleware_ProblemDocument(t *testing.T) {
	router := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/banks?lang=pt-BR", nil)
	req.Header.Set("Authorization", "Bearer sales-token")
	router.ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("esperava 'application/problem+json', obteve '%s'", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("resposta não é JSON: %v", err)
	}
	if body["title"] != "Acesso negado" {
		t.Errorf("esperava 'Acesso negado', obteve '%v'", body["title"])
	}
	if body["type"] != "http://localhost:8080/problems/forbidden" {
		t.Errorf("tipo inesperado: %v", body["type"])
	}
	if body["instance"] != "/banks" {
		t.Errorf("instance inesperado: %v", body["instance"])
	}
}

func TestCurrentUser_SemUsuario(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := CurrentUser(c); ok {
		t.Error("não esperava usuário no contexto")
	}
}
