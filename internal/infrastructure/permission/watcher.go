package permission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/casbin/casbin/v2/persist"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
)

const grantsChannel = "avantpro:grants:changed"

var _ persist.Watcher = (*RedisWatcher)(nil)

// RedisWatcher avisa as outras instâncias quando a tabela de concessões muda
type RedisWatcher struct {
	client     *redis.Client
	instanceID string
	logger     ports.Logger

	mu       sync.RWMutex
	callback func(string)
}

// NewRedisWatcher cria o watcher sobre um cliente Redis existente
func NewRedisWatcher(client *redis.Client, logger ports.Logger) *RedisWatcher {
	return &RedisWatcher{
		client:     client,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
}

func (w *RedisWatcher) SetUpdateCallback(callback func(string)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.callback = callback
	return nil
}

// Update é chamado pelo enforcer depois de cada alteração gravada no banco
func (w *RedisWatcher) Update() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.client.Publish(ctx, grantsChannel, w.instanceID).Err(); err != nil {
		return fmt.Errorf("failed to publish grant change: %w", err)
	}
	return nil
}

// Close não fecha o cliente, que é compartilhado com o cache
func (w *RedisWatcher) Close() {}

// Listen chama o callback para cada alteração feita por outra instância.
// Bloqueia até o contexto ser cancelado.
func (w *RedisWatcher) Listen(ctx context.Context) error {
	pubsub := w.client.Subscribe(ctx, grantsChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", grantsChannel, err)
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
			if msg.Payload == w.instanceID {
				continue
			}

			w.mu.RLock()
			callback := w.callback
			w.mu.RUnlock()

			if callback != nil {
				w.logger.Debug("grants changed on another instance", "source", msg.Payload)
				callback(msg.Payload)
			}
		}
	}
}
