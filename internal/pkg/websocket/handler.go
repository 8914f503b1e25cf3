package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models/dto"
)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	messages *MessageHandler
	origins  map[string]bool
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. An empty origin list accepts
// any origin.
func NewHandler(hub *Hub, messages *MessageHandler, allowedOrigins []string, logger zerolog.Logger) *Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Handler{
		hub:      hub,
		messages: messages,
		origins:  origins,
		logger:   logger,
	}
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || len(h.origins) == 0 || h.origins["*"] || h.origins[origin]
}

// HandleConnection upgrades the request to a socket subscribed to one chat
// of the caller's workspace. It must run behind the auth middleware.
func (h *Handler) HandleConnection(c *gin.Context) {
	chatID := c.Param("id")
	userID := c.GetString("userID")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	w, err := h.messages.workspaces.Get(userID)
	if err == nil {
		_, err = w.Chat(chatID)
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Chat not found")))
		return
	}

	upgrader := newUpgrader(h.checkOrigin)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("chat_id", chatID).Str("user_id", userID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(h.hub, conn, userID, chatID, h.messages, h.logger)
	h.hub.register <- client
	client.start()

	h.logger.Info().
		Str("chat_id", chatID).
		Str("user_id", userID).
		Str("remote_addr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
