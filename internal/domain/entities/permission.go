package entities

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
)

var (
	ErrInvalidPermissionData = errors.New("invalid permission data")
)

// MaxPermissionNameLength é o tamanho máximo do nome, em caracteres
const MaxPermissionNameLength = 100

// Permission representa um registro de permissão como armazenado no catálogo
type Permission struct {
	ID        uint
	Name      string
	CreatedAt *time.Time
}

// NewPermission cria uma permissão nova com nome validado
func NewPermission(name string, createdAt time.Time) (*Permission, error) {
	p := &Permission{Name: strings.TrimSpace(name), CreatedAt: &createdAt}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parsed retorna a classificação derivada do nome
func (p Permission) Parsed() valueobjects.ParsedPermission {
	return valueobjects.ParsePermissionName(p.Name)
}

// Rename troca o nome da permissão
func (p *Permission) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidPermissionData
	}
	p.Name = name
	return nil
}

// Validate valida regras de negócio da entidade Permission
func (p *Permission) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidPermissionData
	}
	// Limite em caracteres, como o varchar(100) e o binding max=100
	if utf8.RuneCountInString(p.Name) > MaxPermissionNameLength {
		return ErrInvalidPermissionData
	}
	return nil
}
