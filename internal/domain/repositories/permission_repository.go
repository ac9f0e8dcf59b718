package repositories

import (
	"context"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
)

// PermissionRepository define a interface para o catálogo de permissões
type PermissionRepository interface {
	Create(ctx context.Context, permission *entities.Permission) error
	FindByID(ctx context.Context, id uint) (*entities.Permission, error)
	FindByName(ctx context.Context, name string) (*entities.Permission, error)
	Update(ctx context.Context, permission *entities.Permission) error
	Delete(ctx context.Context, id uint) error
	// List retorna todas as permissões na ordem de inserção
	List(ctx context.Context) ([]entities.Permission, error)
}
