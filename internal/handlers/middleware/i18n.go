package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/handlers/dto"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = dto.LanguageContextKey
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = dto.I18nServiceContextKey
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito)
// 2. Accept-Language header, respeitando os pesos q
// 3. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c.Query("lang"), c.GetHeader("Accept-Language"))

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

func (m *I18nMiddleware) resolve(queryLang, acceptLang string) string {
	if queryLang != "" && m.i18nService.IsLanguageSupported(queryLang) {
		return queryLang
	}

	if lang := m.i18nService.Match(acceptLang); lang != "" {
		return lang
	}

	return m.i18nService.GetDefaultLanguage()
}
