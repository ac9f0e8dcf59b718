package ports

import (
	"context"
	"time"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
)

// GrantStore persiste as concessões (categoria, ação) de cada usuário
type GrantStore interface {
	Grants(ctx context.Context, userID string) ([]entities.UserPermission, error)
	Grant(ctx context.Context, userID string, permission entities.UserPermission) error
	Revoke(ctx context.Context, userID string, permission entities.UserPermission) error
	RevokeAll(ctx context.Context, userID string) error
}

// TokenClaims são os dados extraídos de um token de acesso válido
type TokenClaims struct {
	UserID    string
	Role      entities.Role
	ExpiresAt time.Time
}

// TokenIssuer emite e valida tokens de acesso
type TokenIssuer interface {
	Issue(user *entities.User) (string, time.Time, error)
	Parse(token string) (*TokenClaims, error)
}

// PasswordHasher abstrai o algoritmo de hash de senhas
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
