package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/domain/repositories"
)

// AuthService autentica usuários e valida tokens de acesso
type AuthService struct {
	userRepo repositories.UserRepository
	grants   ports.GrantStore
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	grants ports.GrantStore,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		grants:   grants,
		hasher:   hasher,
		issuer:   issuer,
		logger:   logger,
	}
}

// LoginResult contém o token emitido e o usuário autenticado
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *entities.User
}

// Login verifica as credenciais e emite um token de acesso
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		s.logger.Warn("login failed", "reason", "unknown user")
		return nil, errors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn("login failed", "reason", "wrong password", "user_id", user.ID)
		return nil, errors.ErrInvalidCredentials
	}

	if err := s.loadGrants(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate valida o token e carrega o usuário com suas concessões
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, errors.ErrUnauthorized
	}

	if err := s.loadGrants(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) loadGrants(ctx context.Context, user *entities.User) error {
	grants, err := s.grants.Grants(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Permissions = grants
	return nil
}
