package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/domain/repositories"
)

// Implementações em memória dos ports para testes

type memPermissionRepo struct {
	mu      sync.Mutex
	nextID  uint
	items   map[uint]entities.Permission
	listErr error
	lists   int
}

func newMemPermissionRepo(names ...string) *memPermissionRepo {
	r := &memPermissionRepo{items: map[uint]entities.Permission{}}
	for _, n := range names {
		_ = r.Create(context.Background(), &entities.Permission{Name: n})
	}
	return r
}

func (r *memPermissionRepo) Create(_ context.Context, p *entities.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.items[p.ID] = *p
	return nil
}

func (r *memPermissionRepo) FindByID(_ context.Context, id uint) (*entities.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPermissionRepo) FindByName(_ context.Context, name string) (*entities.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.Name == name {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memPermissionRepo) Update(_ context.Context, p *entities.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = *p
	return nil
}

func (r *memPermissionRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memPermissionRepo) List(_ context.Context) ([]entities.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]entities.Permission, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entities.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mesmo comportamento do índice único parcial: só usuários ativos colidem
	for _, existing := range r.users {
		if existing.Email == u.Email && !existing.IsDeleted() {
			return domainerrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	cp := *u
	cp.Permissions = nil
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email.String() == email && !u.IsDeleted() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		now := time.Now()
		u.DeletedAt = &now
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.User, 0, len(r.users))
	for _, u := range r.users {
		if u.IsDeleted() {
			continue
		}
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memGrantStore struct {
	mu       sync.Mutex
	grants   map[string][]entities.UserPermission
	failNext bool
}

func newMemGrantStore() *memGrantStore {
	return &memGrantStore{grants: map[string][]entities.UserPermission{}}
}

func (s *memGrantStore) Grants(_ context.Context, userID string) ([]entities.UserPermission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.UserPermission{}, s.grants[userID]...), nil
}

func (s *memGrantStore) Grant(_ context.Context, userID string, p entities.UserPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		s.failNext = false
		return errors.New("grant store down")
	}
	for _, existing := range s.grants[userID] {
		if existing == p {
			return nil
		}
	}
	s.grants[userID] = append(s.grants[userID], p)
	return nil
}

func (s *memGrantStore) Revoke(_ context.Context, userID string, p entities.UserPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.grants[userID]
	for i, existing := range list {
		if existing == p {
			s.grants[userID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memGrantStore) RevokeAll(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, userID)
	return nil
}

// plainHasher grava a senha com prefixo, suficiente para os testes
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(user *entities.User) (string, time.Time, error) {
	return "token:" + user.ID, time.Now().Add(time.Hour), nil
}

func (fakeIssuer) Parse(token string) (*ports.TokenClaims, error) {
	const prefix = "token:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, errors.New("invalid token")
	}
	return &ports.TokenClaims{UserID: token[len(prefix):]}, nil
}

type passthroughUoW struct{}

func (passthroughUoW) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type countingObserver struct {
	mu    sync.Mutex
	calls int
}

func (o *countingObserver) PermissionsChanged(context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
}

func (o *countingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}
