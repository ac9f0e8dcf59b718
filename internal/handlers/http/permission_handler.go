package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/dto"
	"github.com/rafabene/avantpro-backoffice/internal/services"
)

// PermissionHandler expõe o catálogo de permissões e a visão agrupada
type PermissionHandler struct {
	permissionService *services.PermissionService
	logger            ports.Logger
}

// NewPermissionHandler cria um novo PermissionHandler
func NewPermissionHandler(permissionService *services.PermissionService, logger ports.Logger) *PermissionHandler {
	return &PermissionHandler{
		permissionService: permissionService,
		logger:            logger,
	}
}

// ListPermissions godoc
// @Summary List permissions
// @Description Full permission catalogue with the parsed entity and action of each name
// @Tags permissions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.PermissionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /permissions [get]
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.permissionService.ListPermissions(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionResponses(permissions))
}

// ListGroups godoc
// @Summary Permission groups
// @Description Permissions grouped by entity with CRUD coverage statistics
// @Tags permissions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.PermissionGroupResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /permissions/groups [get]
func (h *PermissionHandler) ListGroups(c *gin.Context) {
	groups, err := h.permissionService.GroupedPermissions(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionGroupResponses(groups))
}

// GetGroup godoc
// @Summary Permission group by entity
// @Tags permissions
// @Produce json
// @Security Bearer
// @Param entity path string true "Entity (customers, banks, ...)"
// @Success 200 {object} dto.PermissionGroupResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /permissions/groups/{entity} [get]
func (h *PermissionHandler) GetGroup(c *gin.Context) {
	group, err := h.permissionService.GroupByEntity(c.Request.Context(), c.Param("entity"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionGroupResponse(*group))
}

// CreatePermission godoc
// @Summary Create permission
// @Tags permissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.PermissionRequest true "Permission name"
// @Success 201 {object} dto.PermissionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /permissions [post]
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req dto.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return
	}

	permission, err := h.permissionService.CreatePermission(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPermissionResponse(*permission))
}

// RenamePermission godoc
// @Summary Rename permission
// @Tags permissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Permission ID"
// @Param request body dto.PermissionRequest true "New name"
// @Success 200 {object} dto.PermissionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /permissions/{id} [put]
func (h *PermissionHandler) RenamePermission(c *gin.Context) {
	id, ok := h.permissionID(c)
	if !ok {
		return
	}

	var req dto.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return
	}

	permission, err := h.permissionService.RenamePermission(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionResponse(*permission))
}

// DeletePermission godoc
// @Summary Delete permission
// @Tags permissions
// @Security Bearer
// @Param id path int true "Permission ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /permissions/{id} [delete]
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	id, ok := h.permissionID(c)
	if !ok {
		return
	}

	if err := h.permissionService.DeletePermission(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PermissionHandler) permissionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, h.logger, errors.ErrPermissionNotFound)
		return 0, false
	}
	return uint(id), true
}
