package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-backoffice/internal/services"
)

const sample = `
permissions:
  - customer_create
  - view dashboard
users:
  - email: admin@avantpro.com
    name: Administrador
    password: trocar-esta-senha
    role: admin
    permissions:
      - category: users
        action: read
`

type fakePermissions struct {
	names map[string]bool
}

func (f *fakePermissions) CreatePermission(_ context.Context, name string) (*entities.Permission, error) {
	if f.names[name] {
		return nil, domainerrors.ErrPermissionAlreadyExists
	}
	f.names[name] = true
	return &entities.Permission{Name: name}, nil
}

type fakeUsers struct {
	inputs []services.CreateUserInput
}

func (f *fakeUsers) CreateUser(_ context.Context, input services.CreateUserInput) (*entities.User, error) {
	for _, existing := range f.inputs {
		if existing.Email == input.Email {
			return nil, domainerrors.ErrEmailAlreadyExists
		}
	}
	f.inputs = append(f.inputs, input)
	return &entities.User{}, nil
}

func TestLoad(t *testing.T) {
	f, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"customer_create", "view dashboard"}, f.Permissions)
	require.Len(t, f.Users, 1)
	assert.Equal(t, "admin", f.Users[0].Role)
	assert.Equal(t, []Grant{{Category: "users", Action: "read"}}, f.Users[0].Permissions)
}

func TestLoad_Erros(t *testing.T) {
	t.Run("campo desconhecido", func(t *testing.T) {
		_, err := Load(strings.NewReader("roles: [admin]\n"))
		assert.Error(t, err)
	})

	t.Run("arquivo vazio", func(t *testing.T) {
		f, err := Load(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, f.Permissions)
	})

	t.Run("arquivo inexistente", func(t *testing.T) {
		_, err := LoadFile("/nao/existe.yaml")
		assert.Error(t, err)
	})
}

func TestApply_Idempotente(t *testing.T) {
	ctx := context.Background()
	f, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	perms := &fakePermissions{names: map[string]bool{}}
	users := &fakeUsers{}

	first, err := Apply(ctx, f, perms, users, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, Result{PermissionsCreated: 2, UsersCreated: 1}, first)
	assert.Equal(t, []services.GrantInput{{Category: "users", Action: "read"}}, users.inputs[0].Permissions)

	second, err := Apply(ctx, f, perms, users, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, Result{PermissionsSkipped: 2, UsersSkipped: 1}, second)
}
