package cache

import (
	"context"
	"sync"

	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
)

// observerSet mantém os observers inscritos em mudanças do catálogo
type observerSet struct {
	mu        sync.Mutex
	nextID    int
	observers map[int]ports.CacheObserver
}

func newObserverSet() *observerSet {
	return &observerSet{observers: make(map[int]ports.CacheObserver)}
}

func (s *observerSet) subscribe(observer ports.CacheObserver) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = observer

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// notify chama os observers fora do lock para permitir unsubscribe durante a notificação
func (s *observerSet) notify(ctx context.Context) {
	s.mu.Lock()
	snapshot := make([]ports.CacheObserver, 0, len(s.observers))
	for _, o := range s.observers {
		snapshot = append(snapshot, o)
	}
	s.mu.Unlock()

	for _, o := range snapshot {
		o.PermissionsChanged(ctx)
	}
}
