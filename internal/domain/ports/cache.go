package ports

import (
	"context"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
)

// CacheObserver é notificado quando o catálogo de permissões muda
type CacheObserver interface {
	PermissionsChanged(ctx context.Context)
}

// GroupCache guarda a visão agrupada de permissões com TTL
type GroupCache interface {
	// Get retorna (grupos, true) em caso de hit
	Get(ctx context.Context) ([]entities.PermissionGroup, bool, error)
	Set(ctx context.Context, groups []entities.PermissionGroup) error
	// Invalidate descarta a visão e notifica os observers
	Invalidate(ctx context.Context) error
	Subscribe(observer CacheObserver) (unsubscribe func())
}
