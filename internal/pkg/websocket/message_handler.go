package websocket

import (
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/workspace"
)

// IncomingHandler appends a message typed into a chat socket
type IncomingHandler interface {
	HandleIncoming(userID, chatID string, in Incoming) error
}

// WorkspaceLookup finds the open workspace of a user
type WorkspaceLookup interface {
	Get(userID string) (*workspace.Workspace, error)
}

// MessageHandler relays chat messages between sockets and workspaces.
// Messages typed into a socket are appended through the owner's workspace;
// messages appended to a workspace are pushed to the chat's sockets.
type MessageHandler struct {
	hub        *Hub
	workspaces WorkspaceLookup
	logger     zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(hub *Hub, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{hub: hub, logger: logger}
}

// Attach sets the workspace lookup. The registry needs the listener before
// it exists, so the two are wired in two steps.
func (h *MessageHandler) Attach(workspaces WorkspaceLookup) {
	h.workspaces = workspaces
}

// Listener returns the workspace hook that pushes appended messages.
func (h *MessageHandler) Listener() workspace.MessageListener {
	return func(ownerID, chatID string, msg models.ChatMessage) {
		h.hub.Publish(ownerID, chatID, msg)
	}
}

// HandleIncoming implements IncomingHandler.
func (h *MessageHandler) HandleIncoming(userID, chatID string, in Incoming) error {
	w, err := h.workspaces.Get(userID)
	if err != nil {
		return err
	}

	msg, err := w.SendMessage(chatID, workspace.MessageDraft{
		Content:          in.Content,
		AttachedResource: in.AttachedResource,
	})
	if err != nil {
		return err
	}

	h.logger.Debug().Str("message_id", msg.ID).Str("chat_id", chatID).Msg("Socket message appended")
	return nil
}
