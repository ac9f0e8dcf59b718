package dto

import (
	"time"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
)

// GrantRequest representa uma concessão (categoria, ação)
type GrantRequest struct {
	Category string `json:"category" binding:"required,max=50"`
	Action   string `json:"action" binding:"required,max=20"`
}

// CreateUserRequest representa a requisição para criar um usuário
type CreateUserRequest struct {
	Email       string         `json:"email" binding:"required,email"`
	Name        string         `json:"name" binding:"required,min=2,max=100"`
	Password    string         `json:"password" binding:"required,min=8,max=72"`
	Role        string         `json:"role" binding:"required,oneof=admin customer_service sales"`
	Permissions []GrantRequest `json:"permissions" binding:"omitempty,dive"`
}

// ListUsersQuery contém filtros e paginação da listagem
type ListUsersQuery struct {
	Role     string `form:"role" binding:"omitempty,oneof=admin customer_service sales"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID          string                    `json:"id"`
	Email       string                    `json:"email"`
	Name        string                    `json:"name"`
	Role        string                    `json:"role"`
	Permissions []entities.UserPermission `json:"permissions"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// MeResponse representa o usuário autenticado e suas capacidades
type MeResponse struct {
	User                    UserResponse    `json:"user"`
	Capabilities            map[string]bool `json:"capabilities"`
	CanAccessAdministration bool            `json:"can_access_administration"`
}

// AccessCheckRequest consulta um conjunto de constantes de permissão
type AccessCheckRequest struct {
	Permissions []string `json:"permissions" binding:"required,min=1,dive,required"`
	Mode        string   `json:"mode" binding:"omitempty,oneof=any all"`
}

// AccessCheckResponse traz o resultado agregado e por constante
type AccessCheckResponse struct {
	Mode    string          `json:"mode"`
	Allowed bool            `json:"allowed"`
	Results map[string]bool `json:"results"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	permissions := user.Permissions
	if permissions == nil {
		permissions = []entities.UserPermission{}
	}

	return UserResponse{
		ID:          user.ID,
		Email:       user.Email.String(),
		Name:        user.Name,
		Role:        string(user.Role),
		Permissions: permissions,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// ToMeResponse monta a resposta de /me
func ToMeResponse(user *entities.User) MeResponse {
	capabilities := make(map[string]bool, len(entities.AllPermissionConstants))
	for constant, allowed := range user.Capabilities() {
		capabilities[string(constant)] = allowed
	}

	return MeResponse{
		User:                    ToUserResponse(user),
		Capabilities:            capabilities,
		CanAccessAdministration: user.CanAccessAdministration(),
	}
}
