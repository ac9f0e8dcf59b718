package cache

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
)

// MemoryGroupCache guarda a visão agrupada em memória com TTL
type MemoryGroupCache struct {
	mu        sync.RWMutex
	groups    []entities.PermissionGroup
	valid     bool
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
	observers *observerSet
}

// NewMemoryGroupCache cria um cache em memória; ttl <= 0 desativa a expiração
func NewMemoryGroupCache(ttl time.Duration) *MemoryGroupCache {
	return &MemoryGroupCache{
		ttl:       ttl,
		now:       time.Now,
		observers: newObserverSet(),
	}
}

// WithClock troca o relógio usado para expiração
func (c *MemoryGroupCache) WithClock(now func() time.Time) *MemoryGroupCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

func (c *MemoryGroupCache) Get(_ context.Context) ([]entities.PermissionGroup, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return nil, false, nil
	}
	if c.ttl > 0 && !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	return cloneGroups(c.groups), true, nil
}

func (c *MemoryGroupCache) Set(_ context.Context, groups []entities.PermissionGroup) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.groups = cloneGroups(groups)
	c.valid = true
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

func (c *MemoryGroupCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.groups = nil
	c.valid = false
	c.mu.Unlock()

	c.observers.notify(ctx)
	return nil
}

func (c *MemoryGroupCache) Subscribe(observer ports.CacheObserver) func() {
	return c.observers.subscribe(observer)
}

// cloneGroups copia slices e mapas para que quem chama não altere o cache
func cloneGroups(groups []entities.PermissionGroup) []entities.PermissionGroup {
	if groups == nil {
		return nil
	}

	out := make([]entities.PermissionGroup, len(groups))
	for i, g := range groups {
		out[i] = g
		out[i].Permissions = maps.Clone(g.Permissions)
		out[i].OriginalPermissions = slices.Clone(g.OriginalPermissions)
		if g.CreatedAt != nil {
			ts := *g.CreatedAt
			out[i].CreatedAt = &ts
		}
	}
	return out
}

var _ ports.GroupCache = (*MemoryGroupCache)(nil)
