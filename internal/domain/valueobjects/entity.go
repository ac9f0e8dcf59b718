package valueobjects

// Entity é o substantivo normalizado que identifica um tipo de recurso
type Entity string

const (
	EntityCustomers       Entity = "customers"
	EntityBanks           Entity = "banks"
	EntityUsers           Entity = "users"
	EntityRoles           Entity = "roles"
	EntityPermissions     Entity = "permissions"
	EntityPosts           Entity = "posts"
	EntityDashboard       Entity = "dashboard"
	EntityRolePermissions Entity = "role_permissions"
	EntityOther           Entity = "other"
	EntityUnknown         Entity = "unknown"
)

// Sinônimos singular/plural colapsam para a chave canônica no plural
var entityAliases = map[string]Entity{
	"customer":           EntityCustomers,
	"customers":          EntityCustomers,
	"user":               EntityUsers,
	"users":              EntityUsers,
	"bank":               EntityBanks,
	"banks":              EntityBanks,
	"role":               EntityRoles,
	"roles":              EntityRoles,
	"permission":         EntityPermissions,
	"permissions":        EntityPermissions,
	"post":               EntityPosts,
	"posts":              EntityPosts,
	"dashboard":          EntityDashboard,
	"role_permission":    EntityRolePermissions,
	"role_permissions":   EntityRolePermissions,
	"assign_permissions": EntityRolePermissions,
}

func normalizeEntity(raw string) Entity {
	if entity, ok := entityAliases[raw]; ok {
		return entity
	}
	return Entity(raw)
}

// String retorna o valor da entidade
func (e Entity) String() string {
	return string(e)
}
