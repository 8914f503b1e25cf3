package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
)

const broadcastBuffer = 256

// Hub fans appended chat messages out to the sockets subscribed to each
// chat. Registration and delivery run on the Run goroutine; mu guards the
// subscriber map for ClientCount.
type Hub struct {
	clients    map[string]map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	logger zerolog.Logger
}

// Message is the payload of one push frame.
type Message struct {
	Type string `json:"type"`

	ChatID  string             `json:"chatId"`
	OwnerID string             `json:"ownerId"`
	Message models.ChatMessage `json:"message"`
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles client registrations and broadcasts until ctx is done. Every
// connected client is closed on return.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.chatID]; !ok {
		h.clients[client.chatID] = make(map[*Client]bool)
	}
	h.clients[client.chatID][client] = true

	h.logger.Info().
		Str("chat_id", client.chatID).
		Str("user_id", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.chatID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.chatID)
	}

	h.logger.Info().
		Str("chat_id", client.chatID).
		Str("user_id", client.userID).
		Msg("Client unregistered")
}

// broadcastMessage pushes a message to every client of its chat. Clients
// whose send buffer is full are dropped.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("chat_id", message.ChatID).Msg("Failed to marshal message for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[message.ChatID]
	if !ok {
		h.logger.Debug().Str("chat_id", message.ChatID).Msg("No clients in chat for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("chat_id", message.ChatID).
		Int("client_count", len(h.clients[message.ChatID])).
		Msg("Message broadcasted to chat")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Publish queues a chat message for delivery. It never blocks; when the queue
// is full the message is dropped, since clients can always reload the chat.
func (h *Hub) Publish(ownerID, chatID string, msg models.ChatMessage) {
	select {
	case h.broadcast <- &Message{Type: "message", ChatID: chatID, OwnerID: ownerID, Message: msg}:
	default:
		h.logger.Warn().Str("chat_id", chatID).Msg("Broadcast queue full, dropping message")
	}
}

// ClientCount returns the number of connected clients for a chat
func (h *Hub) ClientCount(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[chatID])
}
