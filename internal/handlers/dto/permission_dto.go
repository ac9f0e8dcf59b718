package dto

import (
	"time"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
)

// PermissionRequest representa a criação ou renomeação de uma permissão
type PermissionRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// PermissionResponse representa uma permissão do catálogo
type PermissionResponse struct {
	ID        uint                          `json:"id"`
	Name      string                        `json:"name"`
	CreatedAt *time.Time                    `json:"created_at,omitempty"`
	Parsed    valueobjects.ParsedPermission `json:"parsed"`
}

// PermissionGroupResponse representa um grupo de permissões com estatísticas
type PermissionGroupResponse struct {
	Entity              string                        `json:"entity"`
	DisplayName         string                        `json:"display_name"`
	Permissions         map[string]PermissionResponse `json:"permissions"`
	OriginalPermissions []PermissionResponse          `json:"original_permissions"`
	CreatedAt           *time.Time                    `json:"created_at,omitempty"`
	Statistics          entities.GroupStatistics      `json:"statistics"`
}

// ToPermissionResponse converte uma entidade Permission
func ToPermissionResponse(p entities.Permission) PermissionResponse {
	return PermissionResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		Parsed:    p.Parsed(),
	}
}

// ToPermissionResponses converte uma lista de permissões
func ToPermissionResponses(permissions []entities.Permission) []PermissionResponse {
	responses := make([]PermissionResponse, len(permissions))
	for i, p := range permissions {
		responses[i] = ToPermissionResponse(p)
	}
	return responses
}

// ToPermissionGroupResponse converte um grupo e calcula suas estatísticas
func ToPermissionGroupResponse(group entities.PermissionGroup) PermissionGroupResponse {
	slots := make(map[string]PermissionResponse, len(group.Permissions))
	for action, p := range group.Permissions {
		slots[action.String()] = ToPermissionResponse(p)
	}

	return PermissionGroupResponse{
		Entity:              group.Entity.String(),
		DisplayName:         group.DisplayName,
		Permissions:         slots,
		OriginalPermissions: ToPermissionResponses(group.OriginalPermissions),
		CreatedAt:           group.CreatedAt,
		Statistics:          group.Statistics(),
	}
}

// ToPermissionGroupResponses converte a visão agrupada completa
func ToPermissionGroupResponses(groups []entities.PermissionGroup) []PermissionGroupResponse {
	responses := make([]PermissionGroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = ToPermissionGroupResponse(g)
	}
	return responses
}
