package valueobjects

import (
	"strings"
)

// Shape indica qual regra do parser classificou o nome
type Shape string

const (
	ShapeEmpty        Shape = "empty"
	ShapeDashboard    Shape = "dashboard"
	ShapeUnderscore   Shape = "underscore"
	ShapeSpace        Shape = "space"
	ShapeSingleToken  Shape = "single_token"
	ShapeUnrecognized Shape = "unrecognized"
)

// ParsedPermission é a classificação derivada de um nome de permissão livre
type ParsedPermission struct {
	Entity       Entity `json:"entity"`
	Action       Action `json:"action"`
	OriginalName string `json:"original_name"`
	Shape        Shape  `json:"shape"`
}

// Matched informa se o nome foi reconhecido por alguma regra além dos fallbacks
func (p ParsedPermission) Matched() bool {
	return p.Shape != ShapeEmpty && p.Shape != ShapeUnrecognized
}

// ParsePermissionName classifica um nome como "customer_view" ou "delete customer".
// Nunca falha: entradas não reconhecidas resultam em unknown/other.
//
// Nomes com "_" e espaço ao mesmo tempo (ex: "create_new user") seguem apenas
// a regra do underscore, que é avaliada primeiro.
func ParsePermissionName(name string) ParsedPermission {
	result := ParsedPermission{OriginalName: name}

	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		result.Entity = EntityUnknown
		result.Action = ActionUnknown
		result.Shape = ShapeEmpty
		return result
	}

	if normalized == "dashboard_view" || normalized == "dashboard view" {
		result.Entity = EntityDashboard
		result.Action = ActionRead
		result.Shape = ShapeDashboard
		return result
	}

	if strings.Contains(normalized, "_") {
		parts := strings.Split(normalized, "_")
		if len(parts) >= 2 {
			result.Entity = normalizeEntity(parts[0])
			result.Action = normalizeAction(parts[1], underscoreActions)
			result.Shape = ShapeUnderscore
			return result
		}
	}

	if strings.Contains(normalized, " ") {
		parts := strings.Fields(normalized)
		if len(parts) >= 2 {
			result.Action = normalizeAction(parts[0], spaceActions)
			result.Entity = normalizeEntity(strings.Join(parts[1:], "_"))
			result.Shape = ShapeSpace
			return result
		}
	}

	result.Entity = EntityOther
	for _, candidate := range singleTokenActions {
		for _, needle := range candidate.needles {
			if strings.Contains(normalized, needle) {
				result.Action = candidate.action
				result.Shape = ShapeSingleToken
				return result
			}
		}
	}

	result.Action = ActionUnknown
	result.Shape = ShapeUnrecognized
	return result
}
