package valueobjects

// Action é um verbo de permissão já normalizado
type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionUnknown Action = "unknown"
)

// CanonicalActions lista o conjunto CRUD na ordem de exibição
var CanonicalActions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// Tabela usada no formato "<entidade>_<ação>"
var underscoreActions = map[string]Action{
	"view":   ActionRead,
	"read":   ActionRead,
	"create": ActionCreate,
	"add":    ActionCreate,
	"update": ActionUpdate,
	"edit":   ActionUpdate,
	"delete": ActionDelete,
	"remove": ActionDelete,
}

// Tabela usada no formato "<ação> <entidade...>" (aceita também "manage")
var spaceActions = map[string]Action{
	"view":   ActionRead,
	"read":   ActionRead,
	"create": ActionCreate,
	"add":    ActionCreate,
	"update": ActionUpdate,
	"edit":   ActionUpdate,
	"delete": ActionDelete,
	"remove": ActionDelete,
	"manage": ActionRead,
}

// Ordem importa: o primeiro grupo com substring encontrada vence
var singleTokenActions = []struct {
	needles []string
	action  Action
}{
	{needles: []string{"view", "read"}, action: ActionRead},
	{needles: []string{"create", "add"}, action: ActionCreate},
	{needles: []string{"update", "edit"}, action: ActionUpdate},
	{needles: []string{"delete", "remove"}, action: ActionDelete},
}

func normalizeAction(raw string, table map[string]Action) Action {
	if action, ok := table[raw]; ok {
		return action
	}
	// Ações desconhecidas passam adiante sem alteração
	return Action(raw)
}

// String retorna o valor da ação
func (a Action) String() string {
	return string(a)
}

// IsCanonical verifica se a ação pertence ao conjunto CRUD
func (a Action) IsCanonical() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}
