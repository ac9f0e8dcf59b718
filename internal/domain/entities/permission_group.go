package entities

import (
	"math"
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
)

// PermissionGroup é a visão sintética por entidade com no máximo uma permissão por ação CRUD
type PermissionGroup struct {
	Entity              valueobjects.Entity                `json:"entity"`
	DisplayName         string                             `json:"display_name"`
	Permissions         map[valueobjects.Action]Permission `json:"permissions"`
	OriginalPermissions []Permission                       `json:"original_permissions"`
	CreatedAt           *time.Time                         `json:"created_at"`
}

// GroupStatistics resume quantas ações CRUD um grupo cobre
type GroupStatistics struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Percentage int `json:"percentage"`
}

var entityDisplayNames = map[valueobjects.Entity]string{
	valueobjects.EntityCustomers:       "Customers",
	valueobjects.EntityBanks:           "Banks",
	valueobjects.EntityUsers:           "Users",
	valueobjects.EntityRoles:           "Roles",
	valueobjects.EntityPermissions:     "Permissions",
	valueobjects.EntityPosts:           "Posts",
	valueobjects.EntityDashboard:       "Dashboard",
	valueobjects.EntityRolePermissions: "Role Permissions",
	valueobjects.EntityOther:           "Other",
}

// DisplayNameFor retorna o rótulo de uma entidade; fora da tabela, capitaliza a primeira letra
func DisplayNameFor(entity valueobjects.Entity) string {
	if name, ok := entityDisplayNames[entity]; ok {
		return name
	}

	s := string(entity)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// GroupPermissionsByEntity agrupa permissões pela entidade extraída do nome.
// Se duas permissões resultarem no mesmo par (entidade, ação), a última vence o slot,
// mas ambas permanecem em OriginalPermissions.
func GroupPermissionsByEntity(permissions []Permission) []PermissionGroup {
	index := make(map[valueobjects.Entity]int)
	groups := make([]PermissionGroup, 0)

	for _, permission := range permissions {
		parsed := permission.Parsed()

		pos, ok := index[parsed.Entity]
		if !ok {
			groups = append(groups, PermissionGroup{
				Entity:      parsed.Entity,
				DisplayName: DisplayNameFor(parsed.Entity),
				Permissions: make(map[valueobjects.Action]Permission),
			})
			pos = len(groups) - 1
			index[parsed.Entity] = pos
		}

		group := &groups[pos]
		if parsed.Action.IsCanonical() {
			group.Permissions[parsed.Action] = permission
		}
		group.OriginalPermissions = append(group.OriginalPermissions, permission)

		if permission.CreatedAt != nil {
			if group.CreatedAt == nil || permission.CreatedAt.Before(*group.CreatedAt) {
				ts := *permission.CreatedAt
				group.CreatedAt = &ts
			}
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		ri, rj := groupRank(groups[i].Entity), groupRank(groups[j].Entity)
		if ri != rj {
			return ri < rj
		}
		return groups[i].DisplayName < groups[j].DisplayName
	})

	return groups
}

// dashboard primeiro, other por último
func groupRank(entity valueobjects.Entity) int {
	switch entity {
	case valueobjects.EntityDashboard:
		return 0
	case valueobjects.EntityOther:
		return 2
	default:
		return 1
	}
}

// Statistics calcula a cobertura CRUD do grupo
func (g PermissionGroup) Statistics() GroupStatistics {
	total := len(valueobjects.CanonicalActions)
	active := 0
	for _, action := range valueobjects.CanonicalActions {
		if _, ok := g.Permissions[action]; ok {
			active++
		}
	}

	return GroupStatistics{
		Total:      total,
		Active:     active,
		Percentage: int(math.Round(float64(active) / float64(total) * 100)),
	}
}

// PermissionFor retorna a permissão que ocupa o slot da ação, se houver
func (g PermissionGroup) PermissionFor(action valueobjects.Action) (Permission, bool) {
	p, ok := g.Permissions[action]
	return p, ok
}

// FindGroup busca um grupo pela entidade
func FindGroup(groups []PermissionGroup, entity valueobjects.Entity) (PermissionGroup, bool) {
	for _, g := range groups {
		if g.Entity == entity {
			return g, true
		}
	}
	return PermissionGroup{}, false
}
