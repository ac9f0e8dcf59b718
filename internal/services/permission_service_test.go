package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/cache"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/logging"
)

func newPermissionService(repo *memPermissionRepo) (*PermissionService, *countingObserver) {
	c := cache.NewMemoryGroupCache(time.Minute)
	obs := &countingObserver{}
	c.Subscribe(obs)
	return NewPermissionService(repo, c, logging.NewNopLogger()), obs
}

func TestPermissionService_GroupedPermissions(t *testing.T) {
	ctx := context.Background()
	repo := newMemPermissionRepo("customer_create", "customer_read", "customer_delete", "view dashboard", "export")
	svc, _ := newPermissionService(repo)

	groups, err := svc.GroupedPermissions(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, valueobjects.EntityDashboard, groups[0].Entity)
	assert.Equal(t, valueobjects.EntityCustomers, groups[1].Entity)
	assert.Equal(t, valueobjects.EntityOther, groups[2].Entity)

	stats := groups[1].Statistics()
	assert.Equal(t, 3, stats.Active)
	assert.Equal(t, 75, stats.Percentage)

	t.Run("segunda chamada usa o cache", func(t *testing.T) {
		_, err := svc.GroupedPermissions(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.lists)
	})
}

func TestPermissionService_MutacoesInvalidamCache(t *testing.T) {
	ctx := context.Background()
	repo := newMemPermissionRepo("bank_read")
	svc, obs := newPermissionService(repo)

	_, err := svc.GroupedPermissions(ctx)
	require.NoError(t, err)

	created, err := svc.CreatePermission(ctx, "  bank_create ")
	require.NoError(t, err)
	assert.Equal(t, "bank_create", created.Name)
	assert.NotNil(t, created.CreatedAt)
	assert.Equal(t, 1, obs.count())

	group, err := svc.GroupByEntity(ctx, "Banks")
	require.NoError(t, err)
	assert.Equal(t, 2, group.Statistics().Active)
	assert.Equal(t, 2, repo.lists)

	_, err = svc.RenamePermission(ctx, created.ID, "bank_update")
	require.NoError(t, err)
	assert.Equal(t, 2, obs.count())

	require.NoError(t, svc.DeletePermission(ctx, created.ID))
	assert.Equal(t, 3, obs.count())

	group, err = svc.GroupByEntity(ctx, "banks")
	require.NoError(t, err)
	assert.Equal(t, 1, group.Statistics().Active)
}

func TestPermissionService_Erros(t *testing.T) {
	ctx := context.Background()
	repo := newMemPermissionRepo("customer_read", "bank_read")
	svc, obs := newPermissionService(repo)

	tests := []struct {
		name     string
		run      func() error
		expected error
	}{
		{"nome em branco", func() error { _, err := svc.CreatePermission(ctx, "   "); return err }, domainerrors.ErrInvalidPermissionName},
		{"nome duplicado", func() error { _, err := svc.CreatePermission(ctx, "customer_read"); return err }, domainerrors.ErrPermissionAlreadyExists},
		{"renomear inexistente", func() error { _, err := svc.RenamePermission(ctx, 99, "x"); return err }, domainerrors.ErrPermissionNotFound},
		{"renomear para nome existente", func() error { _, err := svc.RenamePermission(ctx, 1, "bank_read"); return err }, domainerrors.ErrPermissionAlreadyExists},
		{"renomear para branco", func() error { _, err := svc.RenamePermission(ctx, 1, ""); return err }, domainerrors.ErrInvalidPermissionName},
		{"remover inexistente", func() error { return svc.DeletePermission(ctx, 99) }, domainerrors.ErrPermissionNotFound},
		{"grupo inexistente", func() error { _, err := svc.GroupByEntity(ctx, "posts"); return err }, domainerrors.ErrPermissionGroupNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, tt.expected) {
				t.Errorf("esperava '%v', obteve '%v'", tt.expected, err)
			}
		})
	}

	assert.Equal(t, 0, obs.count(), "falhas não devem invalidar o cache")

	t.Run("parâmetros i18n no conflito", func(t *testing.T) {
		_, err := svc.CreatePermission(ctx, "customer_read")
		assert.Equal(t, map[string]interface{}{"Name": "customer_read"}, domainerrors.ParamsOf(err))
	})

	t.Run("renomear para o próprio nome é permitido", func(t *testing.T) {
		p, err := svc.RenamePermission(ctx, 1, "customer_read")
		require.NoError(t, err)
		assert.Equal(t, "customer_read", p.Name)
	})
}

func TestPermissionService_FalhaNoRepositorio(t *testing.T) {
	repo := newMemPermissionRepo("customer_read")
	repo.listErr = errors.New("db down")
	svc, _ := newPermissionService(repo)

	groups, err := svc.GroupedPermissions(context.Background())
	assert.Error(t, err)
	assert.Nil(t, groups)
}
