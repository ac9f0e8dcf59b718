package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
	ErrInvalidGrant    = errors.New("invalid permission grant")
)

// UserPermission é uma concessão (categoria, ação) atribuída a um usuário
type UserPermission struct {
	Category string `json:"category"`
	Action   string `json:"action"`
}

// NewUserPermission normaliza e valida uma concessão vinda de fora do domínio
func NewUserPermission(category, action string) (UserPermission, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	action = strings.ToLower(strings.TrimSpace(action))

	if category == "" || action == "" {
		return UserPermission{}, ErrInvalidGrant
	}
	if !valueobjects.Action(action).IsCanonical() {
		return UserPermission{}, ErrInvalidGrant
	}

	return UserPermission{Category: category, Action: action}, nil
}

// Constant retorna a constante equivalente, se existir
func (p UserPermission) Constant() (PermissionConstant, bool) {
	if p.Category == "" || p.Action == "" {
		return "", false
	}
	return PermissionConstantFor(p.Category, p.Action)
}

// User representa um usuário autenticado do back office
type User struct {
	ID           string
	Email        valueobjects.Email
	Name         string
	PasswordHash string
	Role         Role
	Permissions  []UserPermission
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // Soft delete
}

// HasPermission verifica se o usuário pode executar a ação da constante.
// Qualquer ambiguidade resulta em acesso negado.
func (u *User) HasPermission(permission PermissionConstant) bool {
	if u == nil {
		return false
	}

	// Todo usuário autenticado pode ver o dashboard
	if permission == PermissionDashboardView {
		return true
	}

	for _, p := range u.Permissions {
		if c, ok := p.Constant(); ok && c == permission {
			return true
		}
	}
	return false
}

// HasAnyPermission verifica se o usuário tem pelo menos uma das permissões
func (u *User) HasAnyPermission(permissions ...PermissionConstant) bool {
	for _, p := range permissions {
		if u.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions verifica se o usuário tem todas as permissões
func (u *User) HasAllPermissions(permissions ...PermissionConstant) bool {
	for _, p := range permissions {
		if !u.HasPermission(p) {
			return false
		}
	}
	return true
}

// HasRole compara o role exato, sem hierarquia
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	return u.Role == role
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// IsCustomerService verifica se o usuário é do atendimento
func (u *User) IsCustomerService() bool {
	return u.HasRole(RoleCustomerService)
}

// IsSales verifica se o usuário é de vendas
func (u *User) IsSales() bool {
	return u.HasRole(RoleSales)
}

// CanAccessAdministration depende das permissões, não do role
func (u *User) CanAccessAdministration() bool {
	return u.HasAnyPermission(AdministrationPermissions...)
}

// Capabilities avalia todas as constantes conhecidas
func (u *User) Capabilities() map[PermissionConstant]bool {
	result := make(map[PermissionConstant]bool, len(AllPermissionConstants))
	for _, c := range AllPermissionConstants {
		result[c] = u.HasPermission(c)
	}
	return result
}

// Grant adiciona uma concessão se ainda não existir
func (u *User) Grant(p UserPermission) bool {
	for _, existing := range u.Permissions {
		if existing == p {
			return false
		}
	}
	u.Permissions = append(u.Permissions, p)
	return true
}

// Revoke remove uma concessão
func (u *User) Revoke(p UserPermission) bool {
	for i, existing := range u.Permissions {
		if existing == p {
			u.Permissions = append(u.Permissions[:i], u.Permissions[i+1:]...)
			return true
		}
	}
	return false
}

// IsDeleted verifica se o usuário foi deletado (soft delete)
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.IsZero() {
		return errors.New("email is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if len(u.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}
