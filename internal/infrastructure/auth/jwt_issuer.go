package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
)

const issuer = "avantpro-backoffice"

// accessClaims são as claims do token de acesso
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer implementa ports.TokenIssuer com HS256
type JWTIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTIssuer cria um novo JWTIssuer
func NewJWTIssuer(secret string, expiry time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue gera um token de acesso para o usuário
func (i *JWTIssuer) Issue(user *entities.User) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.expiry)

	claims := accessClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse valida assinatura, emissor e expiração
func (i *JWTIssuer) Parse(raw string) (*ports.TokenClaims, error) {
	claims := &accessClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, errors.Join(domainerrors.ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &ports.TokenClaims{
		UserID:    claims.Subject,
		Role:      entities.Role(claims.Role),
		ExpiresAt: expiresAt,
	}, nil
}
