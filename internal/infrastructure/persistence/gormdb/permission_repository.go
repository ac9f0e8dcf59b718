package gormdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/repositories"
)

// PermissionRepository implementa repositories.PermissionRepository
type PermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository cria um novo PermissionRepository
func NewPermissionRepository(db *gorm.DB) repositories.PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(ctx context.Context, permission *entities.Permission) error {
	model := toPermissionModel(permission)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.WithParams(domainerrors.ErrPermissionAlreadyExists, map[string]interface{}{"Name": permission.Name})
		}
		return err
	}

	permission.ID = model.ID
	return nil
}

func (r *PermissionRepository) FindByID(ctx context.Context, id uint) (*entities.Permission, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *PermissionRepository) FindByName(ctx context.Context, name string) (*entities.Permission, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *PermissionRepository) findOne(ctx context.Context, query string, arg interface{}) (*entities.Permission, error) {
	var model PermissionModel

	if err := dbFrom(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toPermissionEntity(&model), nil
}

func (r *PermissionRepository) Update(ctx context.Context, permission *entities.Permission) error {
	err := dbFrom(ctx, r.db).Save(toPermissionModel(permission)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.WithParams(domainerrors.ErrPermissionAlreadyExists, map[string]interface{}{"Name": permission.Name})
	}
	return err
}

func (r *PermissionRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&PermissionModel{}, id).Error
}

func (r *PermissionRepository) List(ctx context.Context) ([]entities.Permission, error) {
	var models []PermissionModel

	if err := dbFrom(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	permissions := make([]entities.Permission, 0, len(models))
	for i := range models {
		permissions = append(permissions, *toPermissionEntity(&models[i]))
	}
	return permissions, nil
}

func toPermissionModel(p *entities.Permission) *PermissionModel {
	var createdAt *int64
	if p.CreatedAt != nil {
		ts := p.CreatedAt.Unix()
		createdAt = &ts
	}

	return &PermissionModel{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: createdAt,
	}
}

func toPermissionEntity(model *PermissionModel) *entities.Permission {
	var createdAt *time.Time
	if model.CreatedAt != nil {
		ts := time.Unix(*model.CreatedAt, 0).UTC()
		createdAt = &ts
	}

	return &entities.Permission{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: createdAt,
	}
}
