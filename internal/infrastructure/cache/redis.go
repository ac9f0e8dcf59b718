package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
)

const (
	groupsKey      = "avantpro:permissions:groups"
	changedChannel = "avantpro:permissions:changed"
)

// RedisGroupCache compartilha a visão agrupada entre instâncias via Redis
type RedisGroupCache struct {
	client     *redis.Client
	ttl        time.Duration
	instanceID string
	observers  *observerSet
	logger     ports.Logger
}

// NewRedisGroupCacheWithClient cria o cache sobre um cliente compartilhado com o watcher de concessões
func NewRedisGroupCacheWithClient(client *redis.Client, ttl time.Duration, logger ports.Logger) *RedisGroupCache {
	return &RedisGroupCache{
		client:     client,
		ttl:        ttl,
		instanceID: uuid.NewString(),
		observers:  newObserverSet(),
		logger:     logger,
	}
}

// Ping verifica a conexão com o Redis
func (c *RedisGroupCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisGroupCache) Get(ctx context.Context) ([]entities.PermissionGroup, bool, error) {
	data, err := c.client.Get(ctx, groupsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read permission groups: %w", err)
	}

	var groups []entities.PermissionGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		c.logger.Warn("discarding corrupt permission groups cache entry", "error", err)
		return nil, false, nil
	}
	return groups, true, nil
}

func (c *RedisGroupCache) Set(ctx context.Context, groups []entities.PermissionGroup) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to encode permission groups: %w", err)
	}
	return c.client.Set(ctx, groupsKey, data, c.ttl).Err()
}

// Invalidate apaga a visão, notifica observers locais e avisa as outras instâncias
func (c *RedisGroupCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, groupsKey).Err(); err != nil {
		return fmt.Errorf("failed to delete permission groups: %w", err)
	}

	c.observers.notify(ctx)

	if err := c.client.Publish(ctx, changedChannel, c.instanceID).Err(); err != nil {
		return fmt.Errorf("failed to publish invalidation: %w", err)
	}
	return nil
}

func (c *RedisGroupCache) Subscribe(observer ports.CacheObserver) func() {
	return c.observers.subscribe(observer)
}

// Listen repassa invalidações publicadas por outras instâncias aos observers locais.
// Bloqueia até o contexto ser cancelado.
func (c *RedisGroupCache) Listen(ctx context.Context) error {
	pubsub := c.client.Subscribe(ctx, changedChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", changedChannel, err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if msg.Payload == c.instanceID {
				continue
			}
			c.logger.Debug("permission catalogue changed on another instance", "source", msg.Payload)
			c.observers.notify(ctx)
		}
	}
}

var _ ports.GroupCache = (*RedisGroupCache)(nil)
