package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/dto"
)

// CurrentUserContextKey guarda o usuário autenticado no contexto do Gin
const CurrentUserContextKey = "current_user"

// Authenticator resolve um token de acesso para o usuário com suas concessões
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// AuthMiddleware protege rotas com tokens de acesso
type AuthMiddleware struct {
	authenticator Authenticator
	logger        ports.Logger
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		logger:        logger,
	}
}

// RequireAuth exige um token Bearer (ou ?access_token= para websockets)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("access_token")
		}
		if token == "" {
			dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
			return
		}

		user, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainerrors.ErrUnauthorized) {
				m.logger.Debug("rejected access token", "path", c.Request.URL.Path)
				dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
				return
			}
			m.logger.Error("failed to authenticate request", "error", err)
			dto.Abort(c, dto.InternalErrorResponseI18n(c))
			return
		}

		c.Set(CurrentUserContextKey, user)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser retorna o usuário autenticado, se houver
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, ok := c.Get(CurrentUserContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok && user != nil
}

// RequirePermission libera a rota se o usuário tiver qualquer uma das constantes
func (m *AuthMiddleware) RequirePermission(permissions ...entities.PermissionConstant) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
			return
		}

		if !user.HasAnyPermission(permissions...) {
			m.logger.Warn("permission denied", "user_id", user.ID, "required", permissions)
			dto.Abort(c, dto.ForbiddenErrorResponseI18n(c))
			return
		}

		c.Next()
	}
}

// RequireRole libera a rota para os roles informados, sem hierarquia
func (m *AuthMiddleware) RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
			return
		}

		for _, role := range roles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}

		m.logger.Warn("role denied", "user_id", user.ID, "role", user.Role, "required", roles)
		dto.Abort(c, dto.ForbiddenErrorResponseI18n(c))
	}
}
