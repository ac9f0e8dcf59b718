package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/avantpro-backoffice/internal/domain/ports"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/middleware"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 8
)

// Event é a mensagem enviada aos dashboards conectados
type Event struct {
	Type string `json:"type"`
}

// EventPermissionsChanged avisa que a visão agrupada deve ser recarregada
const EventPermissionsChanged = "permissions_changed"

type client struct {
	conn   *websocket.Conn
	userID string
	send   chan Event
}

// EventHub mantém as conexões websocket e implementa ports.CacheObserver
type EventHub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	logger   ports.Logger
}

// NewEventHub cria o hub; checkOrigin nil aceita qualquer origem
func NewEventHub(checkOrigin func(r *http.Request) bool, logger ports.Logger) *EventHub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	return &EventHub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// PermissionsChanged repassa a invalidação do cache para todos os clientes
func (h *EventHub) PermissionsChanged(_ context.Context) {
	h.Broadcast(Event{Type: EventPermissionsChanged})
}

// Broadcast nunca bloqueia; clientes com fila cheia são desconectados
func (h *EventHub) Broadcast(event Event) {
	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- event:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket client", "user_id", c.userID)
		h.remove(c)
	}
}

// Count retorna o número de clientes conectados
func (h *EventHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve faz o upgrade da conexão de um usuário autenticado
func (h *EventHub) Serve(c *gin.Context) {
	var userID string
	if user, ok := middleware.CurrentUser(c); ok {
		userID = user.ID
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	cl := &client{conn: conn, userID: userID, send: make(chan Event, sendBuffer)}

	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket connected", "user_id", userID, "total", h.Count())

	go h.writePump(cl)
	h.readPump(cl)
}

func (h *EventHub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// readPump só consome controle (pong/close) para detectar desconexão
func (h *EventHub) readPump(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
		h.logger.Debug("websocket disconnected", "user_id", c.userID)
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *EventHub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var _ ports.CacheObserver = (*EventHub)(nil)
