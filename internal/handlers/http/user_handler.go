package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/domain/repositories"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/dto"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/middleware"
	"github.com/rafabene/avantpro-backoffice/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return
	}

	actor, ok := middleware.CurrentUser(c)
	if !ok {
		dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
		return
	}

	grants := make([]services.GrantInput, len(req.Permissions))
	for i, g := range req.Permissions {
		grants[i] = services.GrantInput{Category: g.Category, Action: g.Action}
	}

	user, err := h.userService.CreateUserAs(c.Request.Context(), actor, services.CreateUserInput{
		Email:       req.Email,
		Name:        req.Name,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: grants,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// GetUser godoc
// @Summary Get user
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security Bearer
// @Param role query string false "Role filter"
// @Param page query int false "Page (starts at 1)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return
	}

	filters := repositories.UserFilters{Page: query.Page, PageSize: query.PageSize}
	if query.Role != "" {
		role := entities.Role(query.Role)
		filters.Role = &role
	}

	users, err := h.userService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// GrantPermission godoc
// @Summary Grant permission to user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param request body dto.GrantRequest true "Grant"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id}/permissions [post]
func (h *UserHandler) GrantPermission(c *gin.Context) {
	var req dto.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return
	}

	actor, ok := middleware.CurrentUser(c)
	if !ok {
		dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
		return
	}

	user, err := h.userService.GrantPermission(c.Request.Context(), actor, c.Param("id"), services.GrantInput{
		Category: req.Category,
		Action:   req.Action,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// RevokePermission godoc
// @Summary Revoke permission from user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param request body dto.GrantRequest true "Grant"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id}/permissions [delete]
func (h *UserHandler) RevokePermission(c *gin.Context) {
	var req dto.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return
	}

	actor, ok := middleware.CurrentUser(c)
	if !ok {
		dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c))
		return
	}

	user, err := h.userService.RevokePermission(c.Request.Context(), actor, c.Param("id"), services.GrantInput{
		Category: req.Category,
		Action:   req.Action,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
