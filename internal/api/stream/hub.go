// Package stream pushes roster generation installs to websocket clients.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/runboard/internal/roster"
	"github.com/wonny/runboard/pkg/logger"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	sendBufSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the envelope sent to clients
type Message struct {
	Event string                `json:"event"` // "current" 접속 직후, "generation" 교체 시
	Data  roster.GenerationInfo `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans generation installs out to every connected client
// ⭐ SSOT: 세대 교체 푸시는 Hub에서만
type Hub struct {
	store  *roster.Store
	logger *logger.Logger

	events      <-chan roster.GenerationInfo
	unsubscribe func()

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates a hub over store. Installs made after NewHub returns are
// delivered once Run is started.
func NewHub(store *roster.Store, log *logger.Logger) *Hub {
	events, unsubscribe := store.Subscribe(sendBufSize)
	return &Hub{
		store:       store,
		logger:      log,
		events:      events,
		unsubscribe: unsubscribe,
		clients:     make(map[*client]struct{}),
	}
}

// Run forwards installs until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	defer h.unsubscribe()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case info, ok := <-h.events:
			if !ok {
				h.closeAll()
				return
			}
			h.broadcast(Message{Event: "generation", Data: info})
		}
	}
}

// ServeHTTP upgrades the connection and streams generation events.
// The current generation, if any, is sent immediately.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufSize)}
	h.register(c)
	defer h.unregister(c)

	if info, ok := h.store.Info(); ok {
		if data, err := json.Marshal(Message{Event: "current", Data: info}); err == nil {
			h.offer(c, data)
		}
	}

	go c.writePump()
	c.readPump()
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.WithField("clients", h.Count()).Debug("Generation stream client connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode generation event")
		return
	}

	// send 채널은 h.mu 아래에서만 송신/close
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// 버퍼가 찬 클라이언트는 연결 해제
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// offer queues data for c without blocking. It reports false when c is no
// longer registered or its buffer is full.
func (h *Hub) offer(c *client, data []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
