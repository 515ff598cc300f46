package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// WebSocketMessage represents a message sent over WebSocket
type WebSocketMessage struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WebSocketClient represents a connected WebSocket client
type WebSocketClient struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan WebSocketMessage

	mu     sync.Mutex
	closed bool
}

// WebSocketHub maintains the set of active clients and broadcasts messages
type WebSocketHub struct {
	clients    map[*WebSocketClient]bool
	broadcast  chan WebSocketMessage
	register   chan *WebSocketClient
	unregister chan *WebSocketClient

	mu             sync.RWMutex
	running        bool
	stopCh         chan struct{}
	apiKey         string
	allowedOrigins []string
}

// NewWebSocketHub creates a new WebSocket hub
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan WebSocketMessage, 256),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
		stopCh:     make(chan struct{}),
	}
}

// SetSecurityConfig sets the key clients must present and the origins the
// handshake accepts. An empty key disables authentication.
func (h *WebSocketHub) SetSecurityConfig(apiKey string, allowedOrigins []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.apiKey = apiKey
	h.allowedOrigins = allowedOrigins
}

// Run starts the hub's main loop
func (h *WebSocketHub) Run() {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	for {
		select {
		case <-h.stopCh:
			h.mu.Lock()
			h.running = false
			for client := range h.clients {
				client.close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if !client.trySend(message) {
					// slow client, drop it
					go func(c *WebSocketClient) {
						h.unregister <- c
					}(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop stops the hub
func (h *WebSocketHub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		h.running = false
		close(h.stopCh)
	}
}

// IsRunning reports whether Run is active
func (h *WebSocketHub) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running
}

// Broadcast sends a message to all connected clients
func (h *WebSocketHub) Broadcast(msg WebSocketMessage) {
	if !h.IsRunning() {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("api: dropping %s broadcast, hub is behind", msg.Type)
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// authorized checks the key sent as api_key query parameter, X-API-Key
// header or Bearer token. Browsers cannot set headers on a WebSocket
// handshake, hence the query parameter.
func (h *WebSocketHub) authorized(r *http.Request) bool {
	h.mu.RLock()
	apiKey := h.apiKey
	h.mu.RUnlock()

	if apiKey == "" {
		return true
	}
	if key := r.URL.Query().Get("api_key"); key != "" {
		return key == apiKey
	}
	return requestAPIKey(r) == apiKey
}

// originPatterns converts the CORS origins to the host patterns the
// handshake checks against
func (h *WebSocketHub) originPatterns() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	patterns := make([]string, 0, len(h.allowedOrigins))
	for _, origin := range h.allowedOrigins {
		if i := strings.Index(origin, "://"); i >= 0 {
			origin = origin[i+3:]
		}
		patterns = append(patterns, origin)
	}
	return patterns
}

// ServeWs handles WebSocket requests from clients
func (h *WebSocketHub) ServeWs(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !h.IsRunning() {
		respondError(w, http.StatusServiceUnavailable, "event stream not running")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns(),
	})
	if err != nil {
		log.Printf("api: websocket accept error: %v", err)
		return
	}

	client := &WebSocketClient{
		hub:  h,
		conn: conn,
		send: make(chan WebSocketMessage, 64),
	}

	select {
	case h.register <- client:
	case <-h.stopCh:
		client.close()
		return
	}

	client.trySend(WebSocketMessage{Type: "connected", Timestamp: time.Now()})

	go client.writePump()

	// Read pump blocks until connection closes
	client.readPump(r.Context())
}

// readPump reads messages from the WebSocket connection
func (c *WebSocketClient) readPump(ctx context.Context) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.stopCh:
		}
	}()

	for {
		var msg map[string]any
		err := wsjson.Read(ctx, c.conn, &msg)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				log.Printf("api: websocket read error: %v", err)
			}
			return
		}

		if msgType, ok := msg["type"].(string); ok {
			c.handleMessage(msgType)
		}
	}
}

// writePump sends messages to the WebSocket connection
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			ctx, cancel := newWriteContext()
			err := wsjson.Write(ctx, c.conn, message)
			cancel()

			if err != nil {
				log.Printf("api: websocket write error: %v", err)
				return
			}

		case <-ticker.C:
			ctx, cancel := newWriteContext()
			err := c.conn.Ping(ctx)
			cancel()

			if err != nil {
				return
			}
		}
	}
}

// handleMessage processes incoming client messages
func (c *WebSocketClient) handleMessage(msgType string) {
	switch msgType {
	case "ping":
		c.trySend(WebSocketMessage{Type: "pong", Timestamp: time.Now()})
	}
}

// trySend queues a message without blocking. It reports false when the
// client is closed or its buffer is full.
func (c *WebSocketClient) trySend(msg WebSocketMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close closes the client connection
func (c *WebSocketClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.send)
	c.conn.Close(websocket.StatusNormalClosure, "closing")
}

// newWriteContext creates a context with timeout for writes
func newWriteContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// MarshalJSON formats the timestamp as RFC 3339
func (m WebSocketMessage) MarshalJSON() ([]byte, error) {
	type Alias WebSocketMessage
	return json.Marshal(&struct {
		Alias
		Timestamp string `json:"timestamp"`
	}{
		Alias:     Alias(m),
		Timestamp: m.Timestamp.Format(time.RFC3339),
	})
}
