package broadcast

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/logging"
	"github.com/betterscore/scoreboard-service/internal/metrics"
)

// Config holds websocket timing and buffering.
type Config struct {
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBuffer     int
	AllowedOrigins []string
}

// DefaultConfig suits overlay pages on the same machine.
func DefaultConfig() Config {
	return Config{
		WriteTimeout:   10 * time.Second,
		ReadTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 512,
		SendBuffer:     32,
		AllowedOrigins: []string{"*"},
	}
}

// Hub pushes every published state to connected websocket clients.
// New clients receive the latest state first.
type Hub struct {
	upgrader websocket.Upgrader
	config   Config
	logger   *slog.Logger
	metrics  *metrics.Recorder

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewHub builds a hub; logger and recorder may be nil.
func NewHub(cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Hub {
	def := DefaultConfig()
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = def.PingInterval
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = def.MaxMessageSize
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = def.SendBuffer
	}

	h := &Hub{
		config:  cfg,
		logger:  logger,
		metrics: recorder,
		clients: make(map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Publish queues state for every client without blocking. Clients whose
// buffers are full are disconnected.
func (h *Hub) Publish(state game.State) {
	data, err := json.Marshal(state)
	if err != nil {
		logging.Error(h.logger, "failed to encode state for broadcast", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			logging.Warn(h.logger, "client send buffer full, disconnecting", "client_id", c.id)
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams state changes to the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.config.SendBuffer),
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	h.metrics.RecordClients(1)
	logging.Info(h.logger, "websocket client connected",
		"client_id", c.id,
		logging.FieldClients, len(h.clients),
	)
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked requires h.mu.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.RecordClients(-1)
	logging.Info(h.logger, "websocket client disconnected",
		"client_id", c.id,
		logging.FieldClients, len(h.clients),
	)
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}

// readPump only services control frames; clients never send commands here.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(h.config.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn(h.logger, "websocket closed unexpectedly", "client_id", c.id, "error", err)
			}
			return
		}
	}
}
