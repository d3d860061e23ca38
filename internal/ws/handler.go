package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is enforced by middleware.WebSocketCORSCheck
	},
}

// Client is one websocket subscriber to a table channel.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	id      string
	channel string
	send    chan []byte
}

// Hub maintains the set of active clients grouped by channel.
type Hub struct {
	rooms      map[string]map[string]*Client // channel -> clientID -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub. Run must be started before clients connect.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run serves register and unregister requests until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, exists := h.rooms[client.channel]; !exists {
				h.rooms[client.channel] = make(map[string]*Client)
			}
			h.rooms[client.channel][client.id] = client
			size := len(h.rooms[client.channel])
			h.mu.Unlock()

			log.Printf("[WS] Client %s joined channel %s (room_size=%d)", client.id, client.channel, size)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, exists := h.rooms[client.channel]; exists {
				if cur, ok := room[client.id]; ok && cur == client {
					delete(room, client.id)
					if len(room) == 0 {
						delete(h.rooms, client.channel)
					}
					close(client.send)
					log.Printf("[WS] Client %s left channel %s", client.id, client.channel)
				}
			}
			h.mu.Unlock()
		}
	}
}

// RoomSize returns the number of clients subscribed to channel.
func (h *Hub) RoomSize(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[channel])
}

// Publish sends a message to every client on channel.
func (h *Hub) Publish(channel string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	h.PublishRaw(channel, data)
}

// PublishRaw sends pre-encoded data to every client on channel.
func (h *Hub) PublishRaw(channel string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, exists := h.rooms[channel]
	if !exists {
		return
	}
	for _, client := range room {
		select {
		case client.send <- data:
		default:
			// Client's buffer is full
			log.Printf("[WS] Send buffer full for client %s on channel %s, dropping message", client.id, channel)
		}
	}
}

// Message types
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for client %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for client %s: %v", c.id, err)
				return
			}
		}
	}
}

// reply queues a message for this client only.
func (c *Client) reply(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] reply dropped for client %s (buffer full)", c.id)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.reply(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
