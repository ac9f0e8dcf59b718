package entities

import (
	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
)

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleCustomerService Role = "customer_service"
	RoleSales           Role = "sales"
)

// IsValid verifica se o role pertence ao conjunto fechado
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCustomerService, RoleSales:
		return true
	}
	return false
}

// PermissionConstant é a chave que a interface usa para pedir uma checagem de acesso
type PermissionConstant string

const (
	PermissionDashboardView PermissionConstant = "DASHBOARD_VIEW"

	// Customer permissions
	PermissionCustomerView   PermissionConstant = "CUSTOMER_VIEW"
	PermissionCustomerCreate PermissionConstant = "CUSTOMER_CREATE"
	PermissionCustomerEdit   PermissionConstant = "CUSTOMER_EDIT"
	PermissionCustomerDelete PermissionConstant = "CUSTOMER_DELETE"

	// Bank permissions
	PermissionBankView   PermissionConstant = "BANK_VIEW"
	PermissionBankCreate PermissionConstant = "BANK_CREATE"
	PermissionBankEdit   PermissionConstant = "BANK_EDIT"
	PermissionBankDelete PermissionConstant = "BANK_DELETE"

	// User permissions
	PermissionUserView   PermissionConstant = "USER_VIEW"
	PermissionUserCreate PermissionConstant = "USER_CREATE"
	PermissionUserEdit   PermissionConstant = "USER_EDIT"
	PermissionUserDelete PermissionConstant = "USER_DELETE"

	// Role permissions
	PermissionRoleView   PermissionConstant = "ROLE_VIEW"
	PermissionRoleCreate PermissionConstant = "ROLE_CREATE"
	PermissionRoleEdit   PermissionConstant = "ROLE_EDIT"
	PermissionRoleDelete PermissionConstant = "ROLE_DELETE"

	// Sem mapeamento por categoria: nunca satisfeitas via lista de permissões
	PermissionPermissionView     PermissionConstant = "PERMISSION_VIEW"
	PermissionRolePermissionView PermissionConstant = "ROLE_PERMISSION_VIEW"
)

// AllPermissionConstants lista a enumeração fechada conhecida pela interface
var AllPermissionConstants = []PermissionConstant{
	PermissionDashboardView,
	PermissionCustomerView, PermissionCustomerCreate, PermissionCustomerEdit, PermissionCustomerDelete,
	PermissionBankView, PermissionBankCreate, PermissionBankEdit, PermissionBankDelete,
	PermissionUserView, PermissionUserCreate, PermissionUserEdit, PermissionUserDelete,
	PermissionRoleView, PermissionRoleCreate, PermissionRoleEdit, PermissionRoleDelete,
	PermissionPermissionView, PermissionRolePermissionView,
}

// AdministrationPermissions dá acesso à área administrativa (qualquer uma basta)
var AdministrationPermissions = []PermissionConstant{
	PermissionRoleView,
	PermissionPermissionView,
	PermissionRolePermissionView,
	PermissionUserView,
}

type categoryAction struct {
	category valueobjects.Entity
	action   valueobjects.Action
}

// constantTable mapeia (categoria, ação) para a constante correspondente
var constantTable = map[categoryAction]PermissionConstant{
	{valueobjects.EntityCustomers, valueobjects.ActionRead}:   PermissionCustomerView,
	{valueobjects.EntityCustomers, valueobjects.ActionCreate}: PermissionCustomerCreate,
	{valueobjects.EntityCustomers, valueobjects.ActionUpdate}: PermissionCustomerEdit,
	{valueobjects.EntityCustomers, valueobjects.ActionDelete}: PermissionCustomerDelete,

	{valueobjects.EntityBanks, valueobjects.ActionRead}:   PermissionBankView,
	{valueobjects.EntityBanks, valueobjects.ActionCreate}: PermissionBankCreate,
	{valueobjects.EntityBanks, valueobjects.ActionUpdate}: PermissionBankEdit,
	{valueobjects.EntityBanks, valueobjects.ActionDelete}: PermissionBankDelete,

	{valueobjects.EntityUsers, valueobjects.ActionRead}:   PermissionUserView,
	{valueobjects.EntityUsers, valueobjects.ActionCreate}: PermissionUserCreate,
	{valueobjects.EntityUsers, valueobjects.ActionUpdate}: PermissionUserEdit,
	{valueobjects.EntityUsers, valueobjects.ActionDelete}: PermissionUserDelete,

	{valueobjects.EntityRoles, valueobjects.ActionRead}:   PermissionRoleView,
	{valueobjects.EntityRoles, valueobjects.ActionCreate}: PermissionRoleCreate,
	{valueobjects.EntityRoles, valueobjects.ActionUpdate}: PermissionRoleEdit,
	{valueobjects.EntityRoles, valueobjects.ActionDelete}: PermissionRoleDelete,
}

// PermissionConstantFor retorna a constante de um par (categoria, ação).
// Categorias fora de customers|banks|users|roles não têm constante.
func PermissionConstantFor(category, action string) (PermissionConstant, bool) {
	c, ok := constantTable[categoryAction{
		category: valueobjects.Entity(category),
		action:   valueobjects.Action(action),
	}]
	return c, ok
}

// IsKnown verifica se a constante pertence à enumeração
func (c PermissionConstant) IsKnown() bool {
	for _, known := range AllPermissionConstants {
		if known == c {
			return true
		}
	}
	return false
}
