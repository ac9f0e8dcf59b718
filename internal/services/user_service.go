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

// UserService contém a lógica de negócio para usuários e suas concessões
type UserService struct {
	userRepo repositories.UserRepository
	grants   ports.GrantStore
	hasher   ports.PasswordHasher
	uow      ports.UnitOfWork
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	grants ports.GrantStore,
	hasher ports.PasswordHasher,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		grants:   grants,
		hasher:   hasher,
		uow:      uow,
		logger:   logger,
	}
}

// GrantInput representa uma concessão ainda não normalizada
type GrantInput struct {
	Category string
	Action   string
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Email       string
	Name        string
	Password    string
	Role        string
	Permissions []GrantInput
}

// CreateUserAs cria um usuário em nome de actor, que só pode repassar o que já possui
func (s *UserService) CreateUserAs(ctx context.Context, actor *entities.User, input CreateUserInput) (*entities.User, error) {
	role := entities.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	if err := authorizeRole(actor, role); err != nil {
		return nil, err
	}
	for _, g := range input.Permissions {
		p, err := entities.NewUserPermission(g.Category, g.Action)
		if err != nil {
			return nil, errors.ErrInvalidGrant
		}
		if err := authorizeGrant(actor, p); err != nil {
			ports.LoggerFrom(ctx, s.logger).Warn("grant delegation denied", "actor_id", actor.ID, "category", p.Category, "action", p.Action)
			return nil, err
		}
	}
	return s.CreateUser(ctx, input)
}

// CreateUser cria um novo usuário com suas concessões iniciais, sem checar quem pede.
// Usado pelo seed e pelo CLI.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	log := ports.LoggerFrom(ctx, s.logger)
	log.Info("creating user", "email", input.Email)

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	role := entities.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	if !role.IsValid() {
		return nil, errors.ErrInvalidRole
	}

	permissions := make([]entities.UserPermission, 0, len(input.Permissions))
	for _, g := range input.Permissions {
		p, err := entities.NewUserPermission(g.Category, g.Action)
		if err != nil {
			return nil, errors.ErrInvalidGrant
		}
		permissions = append(permissions, p)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidUserData, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &entities.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, p := range permissions {
		user.Grant(p)
	}

	if err := user.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidUserData, "invalid user", err)
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.FindByEmail(txCtx, email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrEmailAlreadyExists
		}
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	// As concessões vivem na tabela do casbin, fora da transação do usuário
	for _, p := range user.Permissions {
		if err := s.grants.Grant(ctx, user.ID, p); err != nil {
			s.compensate(ctx, user.ID)
			return nil, err
		}
	}

	log.Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// GetUser busca um usuário por ID, com suas concessões
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	if err := s.loadGrants(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lista usuários com filtros
func (s *UserService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	users, err := s.userRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if err := s.loadGrants(ctx, user); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// GrantPermission concede (categoria, ação) a um usuário em nome de actor
func (s *UserService) GrantPermission(ctx context.Context, actor *entities.User, userID string, input GrantInput) (*entities.User, error) {
	permission, err := entities.NewUserPermission(input.Category, input.Action)
	if err != nil {
		return nil, errors.ErrInvalidGrant
	}
	if err := authorizeGrant(actor, permission); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := authorizeTarget(actor, user); err != nil {
		return nil, err
	}

	if user.Grant(permission) {
		if err := s.grants.Grant(ctx, user.ID, permission); err != nil {
			return nil, err
		}
		ports.LoggerFrom(ctx, s.logger).Info("permission granted", "user_id", user.ID, "actor_id", actor.ID, "category", permission.Category, "action", permission.Action)
	}
	return user, nil
}

// RevokePermission remove (categoria, ação) de um usuário em nome de actor
func (s *UserService) RevokePermission(ctx context.Context, actor *entities.User, userID string, input GrantInput) (*entities.User, error) {
	permission, err := entities.NewUserPermission(input.Category, input.Action)
	if err != nil {
		return nil, errors.ErrInvalidGrant
	}
	if err := authorizeGrant(actor, permission); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := authorizeTarget(actor, user); err != nil {
		return nil, err
	}

	if user.Revoke(permission) {
		if err := s.grants.Revoke(ctx, user.ID, permission); err != nil {
			return nil, err
		}
		ports.LoggerFrom(ctx, s.logger).Info("permission revoked", "user_id", user.ID, "actor_id", actor.ID, "category", permission.Category, "action", permission.Action)
	}
	return user, nil
}

// Capabilities avalia todas as constantes para um usuário
func (s *UserService) Capabilities(ctx context.Context, userID string) (map[entities.PermissionConstant]bool, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Capabilities(), nil
}

func (s *UserService) compensate(ctx context.Context, userID string) {
	if err := s.grants.RevokeAll(ctx, userID); err != nil {
		s.logger.Error("failed to roll back grants", "user_id", userID, "error", err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		s.logger.Error("failed to roll back user", "user_id", userID, "error", err)
	}
}

func (s *UserService) loadGrants(ctx context.Context, user *entities.User) error {
	grants, err := s.grants.Grants(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Permissions = grants
	return nil
}
