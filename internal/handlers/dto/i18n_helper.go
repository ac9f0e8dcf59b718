package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/i18n"
)

// Chaves do contexto do Gin compartilhadas com os middlewares
const (
	LanguageContextKey    = "language"
	I18nServiceContextKey = "i18n_service"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "error.not_found.detail", map[string]interface{}{"Resource": "User"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	i18nService, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return key
	}

	service, ok := i18nService.(*i18n.Service)
	if !ok {
		return key
	}

	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	lang, ok := c.Get(LanguageContextKey)
	if !ok {
		return "en"
	}

	langStr, ok := lang.(string)
	if !ok {
		return "en"
	}

	return langStr
}
