package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/services"
)

// File é o formato do arquivo de seed
type File struct {
	Permissions []string `yaml:"permissions"`
	Users       []User   `yaml:"users"`
}

// User é um usuário a ser criado pelo seed
type User struct {
	Email       string  `yaml:"email"`
	Name        string  `yaml:"name"`
	Password    string  `yaml:"password"`
	Role        string  `yaml:"role"`
	Permissions []Grant `yaml:"permissions"`
}

// Grant é uma concessão (categoria, ação)
type Grant struct {
	Category string `yaml:"category"`
	Action   string `yaml:"action"`
}

// Result resume o que foi criado e o que já existia
type Result struct {
	PermissionsCreated int
	PermissionsSkipped int
	UsersCreated       int
	UsersSkipped       int
}

// PermissionCreator cria permissões no catálogo
type PermissionCreator interface {
	CreatePermission(ctx context.Context, name string) (*entities.Permission, error)
}

// UserCreator cria usuários com concessões
type UserCreator interface {
	CreateUser(ctx context.Context, input services.CreateUserInput) (*entities.User, error)
}

// Load decodifica um arquivo de seed
func Load(r io.Reader) (*File, error) {
	var f File

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// LoadFile abre e decodifica um arquivo de seed
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

// Apply cria permissões e usuários; registros já existentes são ignorados
func Apply(ctx context.Context, f *File, permissions PermissionCreator, users UserCreator, log ports.Logger) (Result, error) {
	var result Result

	for _, name := range f.Permissions {
		_, err := permissions.CreatePermission(ctx, name)
		switch {
		case errors.Is(err, domainerrors.ErrPermissionAlreadyExists):
			result.PermissionsSkipped++
		case err != nil:
			return result, fmt.Errorf("permission %q: %w", name, err)
		default:
			result.PermissionsCreated++
		}
	}

	for _, u := range f.Users {
		grants := make([]services.GrantInput, len(u.Permissions))
		for i, g := range u.Permissions {
			grants[i] = services.GrantInput{Category: g.Category, Action: g.Action}
		}

		_, err := users.CreateUser(ctx, services.CreateUserInput{
			Email:       u.Email,
			Name:        u.Name,
			Password:    u.Password,
			Role:        u.Role,
			Permissions: grants,
		})
		switch {
		case errors.Is(err, domainerrors.ErrEmailAlreadyExists):
			log.Debug("seed user already exists", "email", u.Email)
			result.UsersSkipped++
		case err != nil:
			return result, fmt.Errorf("user %q: %w", u.Email, err)
		default:
			result.UsersCreated++
		}
	}

	log.Info("seed applied",
		"permissions_created", result.PermissionsCreated,
		"permissions_skipped", result.PermissionsSkipped,
		"users_created", result.UsersCreated,
		"users_skipped", result.UsersSkipped,
	)
	return result, nil
}
