package gormdb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/repositories"
	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	model := toUserModel(user)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return err
	}

	user.CreatedAt = time.Unix(model.CreatedAt, 0).UTC()
	user.UpdatedAt = time.Unix(model.UpdatedAt, 0).UTC()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "id = ? AND deleted_at IS NULL", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ? AND deleted_at IS NULL", email)
}

// Soft delete: registros deletados são ignorados
func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*entities.User, error) {
	var model UserModel

	if err := dbFrom(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	// Soft delete: atualizar deleted_at ao invés de deletar
	now := time.Now().Unix()
	return dbFrom(ctx, r.db).Model(&UserModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	query := dbFrom(ctx, r.db).Model(&UserModel{}).Where("deleted_at IS NULL")

	if filters.Role != nil {
		query = query.Where("role = ?", string(*filters.Role))
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	query = query.Order("created_at ASC, id ASC").Limit(pageSize).Offset((page - 1) * pageSize)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(models))
	for _, model := range models {
		user, err := toUserEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func toUserModel(user *entities.User) *UserModel {
	var deletedAt *int64
	if user.DeletedAt != nil {
		ts := user.DeletedAt.Unix()
		deletedAt = &ts
	}

	model := &UserModel{
		ID:           user.ID,
		Email:        user.Email.String(),
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		DeletedAt:    deletedAt,
	}
	if !user.CreatedAt.IsZero() {
		model.CreatedAt = user.CreatedAt.Unix()
	}
	if !user.UpdatedAt.IsZero() {
		model.UpdatedAt = user.UpdatedAt.Unix()
	}
	return model
}

func toUserEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	var deletedAt *time.Time
	if model.DeletedAt != nil {
		ts := time.Unix(*model.DeletedAt, 0).UTC()
		deletedAt = &ts
	}

	return &entities.User{
		ID:           model.ID,
		Email:        email,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		Role:         entities.Role(model.Role),
		CreatedAt:    time.Unix(model.CreatedAt, 0).UTC(),
		UpdatedAt:    time.Unix(model.UpdatedAt, 0).UTC(),
		DeletedAt:    deletedAt,
	}, nil
}
