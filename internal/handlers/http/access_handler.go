package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/dto"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/middleware"
)

// AccessHandler responde às perguntas de permissão do dashboard
type AccessHandler struct{}

// NewAccessHandler cria um novo AccessHandler
func NewAccessHandler() *AccessHandler {
	return &AccessHandler{}
}

// Me godoc
// @Summary Current user capabilities
// @Description Authenticated user, every permission constant with its evaluation and the administration flag
// @Tags access
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /me [get]
func (h *AccessHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToMeResponse(user))
}

// Check godoc
// @Summary Check permissions
// @Description Evaluates permission constants for the current user in "any" (default) or "all" mode
// @Tags access
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.AccessCheckRequest true "Constants to check"
// @Success 200 {object} dto.AccessCheckResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /access/check [post]
func (h *AccessHandler) Check(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
		return
	}

	var req dto.AccessCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return
	}

	constants := make([]entities.PermissionConstant, 0, len(req.Permissions))
	for _, raw := range req.Permissions {
		constant := entities.PermissionConstant(strings.ToUpper(strings.TrimSpace(raw)))
		if !constant.IsKnown() {
			dto.Abort(c, dto.BadRequestErrorResponseI18n(c, "error.unknown_permission", map[string]interface{}{"Permission": raw}))
			return
		}
		constants = append(constants, constant)
	}

	mode := req.Mode
	if mode == "" {
		mode = "any"
	}

	results := make(map[string]bool, len(constants))
	for _, constant := range constants {
		results[string(constant)] = user.HasPermission(constant)
	}

	allowed := user.HasAnyPermission(constants...)
	if mode == "all" {
		allowed = user.HasAllPermissions(constants...)
	}

	c.JSON(http.StatusOK, dto.AccessCheckResponse{
		Mode:    mode,
		Allowed: allowed,
		Results: results,
	})
}

