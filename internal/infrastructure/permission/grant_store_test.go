package permission

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/config"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/persistence/gormdb"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gormdb.NewDatabaseConnection(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, logging.NewNopLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestGrantStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	store, err := NewGrantStore(db, logging.NewNopLogger())
	require.NoError(t, err)

	customerRead := entities.UserPermission{Category: "customers", Action: "read"}
	bankCreate := entities.UserPermission{Category: "banks", Action: "create"}

	require.NoError(t, store.Grant(ctx, "u-1", customerRead))
	require.NoError(t, store.Grant(ctx, "u-1", bankCreate))
	require.NoError(t, store.Grant(ctx, "u-1", bankCreate))
	require.NoError(t, store.Grant(ctx, "u-2", customerRead))

	t.Run("lista concessões do usuário", func(t *testing.T) {
		grants, err := store.Grants(ctx, "u-1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []entities.UserPermission{customerRead, bankCreate}, grants)
	})

	t.Run("persiste entre instâncias", func(t *testing.T) {
		other, err := NewGrantStore(db, logging.NewNopLogger())
		require.NoError(t, err)

		grants, err := other.Grants(ctx, "u-1")
		require.NoError(t, err)
		assert.Len(t, grants, 2)
	})

	t.Run("recarrega políticas gravadas por outra instância", func(t *testing.T) {
		other, err := NewGrantStore(db, logging.NewNopLogger())
		require.NoError(t, err)

		usersUpdate := entities.UserPermission{Category: "users", Action: "update"}
		require.NoError(t, store.Grant(ctx, "u-3", usersUpdate))

		grants, err := other.Grants(ctx, "u-3")
		require.NoError(t, err)
		assert.Empty(t, grants)

		require.NoError(t, other.Reload())

		grants, err = other.Grants(ctx, "u-3")
		require.NoError(t, err)
		assert.Equal(t, []entities.UserPermission{usersUpdate}, grants)
	})

	t.Run("revoga", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "u-1", bankCreate))

		grants, err := store.Grants(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, []entities.UserPermission{customerRead}, grants)
	})

	t.Run("revoga tudo", func(t *testing.T) {
		require.NoError(t, store.RevokeAll(ctx, "u-1"))

		grants, err := store.Grants(ctx, "u-1")
		require.NoError(t, err)
		assert.Empty(t, grants)

		others, err := store.Grants(ctx, "u-2")
		require.NoError(t, err)
		assert.Len(t, others, 1)
	})
}

func TestGrantStore_DescartaLinhasInvalidas(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	store, err := NewGrantStore(db, logging.NewNopLogger())
	require.NoError(t, err)

	// Linha gravada fora do serviço com ação não canônica
	_, err = store.enforcer.AddPolicy("u-1", "customers", "manage")
	require.NoError(t, err)
	require.NoError(t, store.Grant(ctx, "u-1", entities.UserPermission{Category: "customers", Action: "read"}))

	grants, err := store.Grants(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []entities.UserPermission{{Category: "customers", Action: "read"}}, grants)
}

func hasGrant(t *testing.T, store *GrantStore, userID string, p entities.UserPermission) bool {
	t.Helper()

	grants, err := store.Grants(context.Background(), userID)
	require.NoError(t, err)
	for _, g := range grants {
		if g == p {
			return true
		}
	}
	return false
}

func TestGrantStore_PropagaRevogacaoEntreInstancias(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := newTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	customerDelete := entities.UserPermission{Category: "customers", Action: "delete"}

	first, err := NewGrantStore(db, logging.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, first.Watch(NewRedisWatcher(client, logging.NewNopLogger())))

	second, err := NewGrantStore(db, logging.NewNopLogger())
	require.NoError(t, err)
	watcher := NewRedisWatcher(client, logging.NewNopLogger())
	require.NoError(t, second.Watch(watcher))

	go func() { _ = watcher.Listen(ctx) }()
	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(grantsChannel)[grantsChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, first.Grant(ctx, "u-1", customerDelete))
	require.Eventually(t, func() bool {
		return hasGrant(t, second, "u-1", customerDelete)
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, first.Revoke(ctx, "u-1", customerDelete))
	assert.Eventually(t, func() bool {
		grants, err := second.Grants(ctx, "u-1")
		if err != nil {
			return false
		}
		user := &entities.User{ID: "u-1", Role: entities.RoleSales, Permissions: grants}
		return !user.HasPermission(entities.PermissionCustomerDelete)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGrantStore_ReloadEvery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := newTestDB(t)
	bankRead := entities.UserPermission{Category: "banks", Action: "read"}

	first, err := NewGrantStore(db, logging.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, first.Grant(ctx, "u-1", bankRead))

	second, err := NewGrantStore(db, logging.NewNopLogger())
	require.NoError(t, err)
	require.True(t, hasGrant(t, second, "u-1", bankRead))

	go second.ReloadEvery(ctx, 20*time.Millisecond)

	require.NoError(t, first.Revoke(ctx, "u-1", bankRead))
	assert.Eventually(t, func() bool {
		return !hasGrant(t, second, "u-1", bankRead)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRedisWatcher_IgnoraPropriaPublicacao(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	own := NewRedisWatcher(client, logging.NewNopLogger())
	other := NewRedisWatcher(client, logging.NewNopLogger())

	calls := make(chan string, 4)
	require.NoError(t, own.SetUpdateCallback(func(source string) { calls <- source }))

	go func() { _ = own.Listen(ctx) }()
	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(grantsChannel)[grantsChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, own.Update())
	require.NoError(t, other.Update())

	select {
	case source := <-calls:
		assert.Equal(t, other.instanceID, source)
	case <-time.After(2 * time.Second):
		t.Fatal("esperava notificação da outra instância")
	}
	assert.Empty(t, calls)
}
