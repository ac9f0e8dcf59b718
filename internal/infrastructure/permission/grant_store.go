package permission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
)

// Política plana: p, <user_id>, <categoria>, <ação>
const grantModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var _ ports.GrantStore = (*GrantStore)(nil)

// GrantStore guarda as concessões dos usuários na tabela casbin_rule
type GrantStore struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   ports.Logger
}

// NewGrantStore cria o enforcer sobre o banco da aplicação; a tabela é criada se não existir
func NewGrantStore(db *gorm.DB, log ports.Logger) (*GrantStore, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(grantModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &GrantStore{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// Grants retorna as concessões válidas do usuário; linhas malformadas são descartadas
func (s *GrantStore) Grants(_ context.Context, userID string) ([]entities.UserPermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetFilteredPolicy(0, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get grants: %w", err)
	}

	grants := make([]entities.UserPermission, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			s.logger.Warn("ignoring malformed grant", "user_id", userID, "rule", rule)
			continue
		}

		p, err := entities.NewUserPermission(rule[1], rule[2])
		if err != nil {
			s.logger.Warn("ignoring invalid grant", "user_id", userID, "category", rule[1], "action", rule[2])
			continue
		}
		grants = append(grants, p)
	}

	return grants, nil
}

func (s *GrantStore) Grant(_ context.Context, userID string, p entities.UserPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.AddPolicy(userID, p.Category, p.Action); err != nil {
		s.logger.Error("failed to add grant", "error", err, "user_id", userID)
		return fmt.Errorf("failed to add grant: %w", err)
	}
	return nil
}

func (s *GrantStore) Revoke(_ context.Context, userID string, p entities.UserPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.RemovePolicy(userID, p.Category, p.Action); err != nil {
		s.logger.Error("failed to remove grant", "error", err, "user_id", userID)
		return fmt.Errorf("failed to remove grant: %w", err)
	}
	return nil
}

func (s *GrantStore) RevokeAll(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.RemoveFilteredPolicy(0, userID); err != nil {
		return fmt.Errorf("failed to remove grants: %w", err)
	}
	return nil
}

// Reload recarrega a política do banco, útil após alterações feitas por outra instância
func (s *GrantStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.LoadPolicy()
}

// Watch liga o watcher ao enforcer: alterações locais são publicadas e as remotas recarregam a política
func (s *GrantStore) Watch(watcher persist.Watcher) error {
	s.mu.Lock()
	err := s.enforcer.SetWatcher(watcher)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to set casbin watcher: %w", err)
	}

	return watcher.SetUpdateCallback(func(string) {
		if err := s.Reload(); err != nil {
			s.logger.Error("failed to reload grants", "error", err)
		}
	})
}

// ReloadEvery recarrega a política periodicamente até o contexto ser cancelado.
// Limita a janela em que uma revogação perdida no pub/sub continua valendo.
func (s *GrantStore) ReloadEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Reload(); err != nil {
				s.logger.Warn("periodic grant reload failed", "error", err)
			}
		}
	}
}
