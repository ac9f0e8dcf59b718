package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/domain/repositories"
	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
)

// PermissionService mantém o catálogo de permissões e sua visão agrupada
type PermissionService struct {
	permissionRepo repositories.PermissionRepository
	cache          ports.GroupCache
	logger         ports.Logger
}

// NewPermissionService cria um novo PermissionService
func NewPermissionService(
	permissionRepo repositories.PermissionRepository,
	cache ports.GroupCache,
	logger ports.Logger,
) *PermissionService {
	return &PermissionService{
		permissionRepo: permissionRepo,
		cache:          cache,
		logger:         logger,
	}
}

// ListPermissions retorna o catálogo completo
func (s *PermissionService) ListPermissions(ctx context.Context) ([]entities.Permission, error) {
	return s.permissionRepo.List(ctx)
}

// CreatePermission adiciona uma permissão ao catálogo
func (s *PermissionService) CreatePermission(ctx context.Context, name string) (*entities.Permission, error) {
	name = strings.TrimSpace(name)
	s.logger.Info("creating permission", "name", name)

	permission, err := entities.NewPermission(name, time.Now().UTC())
	if err != nil {
		return nil, errors.ErrInvalidPermissionName
	}

	if err := s.ensureUnique(ctx, name, 0); err != nil {
		return nil, err
	}

	if err := s.permissionRepo.Create(ctx, permission); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return permission, nil
}

// RenamePermission altera o nome de uma permissão existente
func (s *PermissionService) RenamePermission(ctx context.Context, id uint, name string) (*entities.Permission, error) {
	name = strings.TrimSpace(name)

	permission, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := permission.Rename(name); err != nil {
		return nil, errors.ErrInvalidPermissionName
	}
	if err := permission.Validate(); err != nil {
		return nil, errors.ErrInvalidPermissionName
	}

	if err := s.ensureUnique(ctx, name, id); err != nil {
		return nil, err
	}

	if err := s.permissionRepo.Update(ctx, permission); err != nil {
		return nil, err
	}

	s.logger.Info("permission renamed", "id", id, "name", name)
	s.invalidate(ctx)
	return permission, nil
}

// DeletePermission remove uma permissão do catálogo
func (s *PermissionService) DeletePermission(ctx context.Context, id uint) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}

	if err := s.permissionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("permission deleted", "id", id)
	s.invalidate(ctx)
	return nil
}

// GroupedPermissions retorna a visão agrupada, usando o cache quando possível
func (s *PermissionService) GroupedPermissions(ctx context.Context) ([]entities.PermissionGroup, error) {
	groups, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("permission group cache unavailable", "error", err)
	} else if ok {
		return groups, nil
	}

	permissions, err := s.permissionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	groups = entities.GroupPermissionsByEntity(permissions)

	if err := s.cache.Set(ctx, groups); err != nil {
		s.logger.Warn("failed to cache permission groups", "error", err)
	}

	return groups, nil
}

// GroupByEntity retorna o grupo de uma entidade
func (s *PermissionService) GroupByEntity(ctx context.Context, entity string) (*entities.PermissionGroup, error) {
	groups, err := s.GroupedPermissions(ctx)
	if err != nil {
		return nil, err
	}

	key := valueobjects.Entity(strings.ToLower(strings.TrimSpace(entity)))
	group, ok := entities.FindGroup(groups, key)
	if !ok {
		return nil, errors.WithParams(errors.ErrPermissionGroupNotFound, map[string]interface{}{"Entity": key.String()})
	}
	return &group, nil
}

func (s *PermissionService) findByID(ctx context.Context, id uint) (*entities.Permission, error) {
	permission, err := s.permissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, errors.ErrPermissionNotFound
	}
	return permission, nil
}

func (s *PermissionService) ensureUnique(ctx context.Context, name string, id uint) error {
	existing, err := s.permissionRepo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return errors.WithParams(errors.ErrPermissionAlreadyExists, map[string]interface{}{"Name": name})
	}
	return nil
}

// Falha ao invalidar não desfaz a escrita; o TTL limita a janela de inconsistência
func (s *PermissionService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate permission groups", "error", err)
	}
}
