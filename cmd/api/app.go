package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/auth"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/cache"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/config"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/permission"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/persistence/gormdb"
	"github.com/rafabene/avantpro-backoffice/internal/services"
)

// app reúne as dependências compartilhadas pelos comandos
type app struct {
	cfg    *config.Config
	logger ports.Logger
	db     *gorm.DB

	groupCache   ports.GroupCache
	redisClient  *redis.Client
	redisCache   *cache.RedisGroupCache
	grants       *permission.GrantStore
	grantWatcher *permission.RedisWatcher

	userService       *services.UserService
	permissionService *services.PermissionService
	authService       *services.AuthService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewSlogLogger(cfg.Logging.Level, cfg.Logging.Format)

	db, err := gormdb.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, db: db}

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		a.redisClient = redis.NewClient(opts)

		redisCache := cache.NewRedisGroupCacheWithClient(a.redisClient, cfg.Cache.TTL, logger)
		if err := redisCache.Ping(context.Background()); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisCache = redisCache
		a.groupCache = redisCache
		logger.Info("permission group cache", "backend", "redis", "ttl", cfg.Cache.TTL)
	} else {
		a.groupCache = cache.NewMemoryGroupCache(cfg.Cache.TTL)
		logger.Info("permission group cache", "backend", "memory", "ttl", cfg.Cache.TTL)
	}

	return a, nil
}

// wire cria os serviços; exige o schema migrado por causa da tabela do casbin
func (a *app) wire() error {
	grants, err := permission.NewGrantStore(a.db, a.logger)
	if err != nil {
		return err
	}
	a.grants = grants

	if a.redisClient != nil {
		a.grantWatcher = permission.NewRedisWatcher(a.redisClient, a.logger)
		if err := grants.Watch(a.grantWatcher); err != nil {
			return err
		}
	}

	userRepo := gormdb.NewUserRepository(a.db)
	permissionRepo := gormdb.NewPermissionRepository(a.db)
	uow := gormdb.NewUnitOfWork(a.db)
	hasher := auth.NewBcryptHasher(0)
	issuer := auth.NewJWTIssuer(a.cfg.JWT.Secret, a.cfg.JWT.AccessExpiry)

	a.userService = services.NewUserService(userRepo, grants, hasher, uow, a.logger)
	a.permissionService = services.NewPermissionService(permissionRepo, a.groupCache, a.logger)
	a.authService = services.NewAuthService(userRepo, grants, hasher, issuer, a.logger)
	return nil
}

func (a *app) migrate() error {
	if err := gormdb.AutoMigrate(a.db); err != nil {
		return err
	}
	a.logger.Info("database migrated")
	return nil
}

func (a *app) close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", "error", err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
