package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/dto"
)

// respondError converte o erro em problema RFC 7807; erros inesperados são logados
func respondError(c *gin.Context, logger ports.Logger, err error) {
	response := dto.ErrorResponseFor(c, err)
	if response.Status >= http.StatusInternalServerError {
		ports.LoggerFrom(c.Request.Context(), logger).Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	dto.Abort(c, response)
}
