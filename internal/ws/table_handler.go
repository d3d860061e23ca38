package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var channelPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidChannel reports whether name can be used as a table channel.
func ValidChannel(name string) bool {
	return channelPattern.MatchString(name)
}

// HandleWebSocket subscribes the caller to the shots published on the
// :channel path parameter.
func HandleWebSocket(h *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		channel := c.Param("channel")
		if !ValidChannel(channel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:     h,
			conn:    conn,
			id:      uuid.NewString(),
			channel: channel,
			send:    make(chan []byte, 64),
		}

		h.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// readPump consumes control messages from a subscriber.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] unexpected close for client %s: %v", c.id, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "ping":
		c.reply(map[string]interface{}{"type": "pong", "channel": c.channel})
	default:
		c.sendError("Unknown message type: " + msg.Type)
	}
}
