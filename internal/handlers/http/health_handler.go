package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger é qualquer dependência que responde a um health check
type Pinger func(ctx context.Context) error

// HealthHandler responde ao health check
type HealthHandler struct {
	env    string
	checks map[string]Pinger
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(env string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{env: env, checks: checks}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"env":    h.env,
		"checks": checks,
	})
}
