package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/dto"
	"github.com/rafabene/avantpro-backoffice/internal/services"
)

// AuthHandler emite tokens de acesso
type AuthHandler struct {
	authService *services.AuthService
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        dto.ToUserResponse(result.User),
	})
}
