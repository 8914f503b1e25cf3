package websocket

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Incoming is a message typed into an open chat socket.
type Incoming struct {
	Content          string                   `json:"content"`
	AttachedResource *models.AttachedResource `json:"attachedResource,omitempty"`
}

// Client is one socket subscribed to one chat. Each queued payload is sent
// as its own text frame.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	userID  string
	chatID  string
	inbound IncomingHandler
	logger  zerolog.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, userID, chatID string, inbound IncomingHandler, logger zerolog.Logger) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		userID:  userID,
		chatID:  chatID,
		inbound: inbound,
		logger:  logger.With().Str("user_id", userID).Str("chat_id", chatID).Logger(),
	}
}

func newUpgrader(checkOrigin func(r *http.Request) bool) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
}

// start runs both pumps.
func (c *Client) start() {
	go c.writePump()
	go c.readPump()
}

// readPump appends typed messages on behalf of the socket's owner. The
// resulting push comes back through the hub like any other message.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.logClose(err)
			return
		}

		var in Incoming
		if err := json.Unmarshal(raw, &in); err != nil {
			c.logger.Debug().Err(err).Msg("Ignoring malformed client message")
			continue
		}
		in.Content = strings.TrimSpace(in.Content)
		if in.Content == "" {
			continue
		}

		if err := c.inbound.HandleIncoming(c.userID, c.chatID, in); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to append client message")
			return
		}
	}
}

func (c *Client) logClose(err error) {
	switch {
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		c.logger.Info().Msg("WebSocket closed")
	case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure):
		c.logger.Warn().Err(err).Msg("Unexpected WebSocket close")
	default:
		c.logger.Debug().Err(err).Msg("WebSocket read ended")
	}
}

// writePump forwards hub payloads and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Debug().Err(err).Msg("WebSocket write failed")
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
