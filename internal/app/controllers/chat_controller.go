package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// ChatController handles conversations and their messages
type ChatController struct{}

// NewChatController creates a new ChatController
func NewChatController() *ChatController {
	return &ChatController{}
}

// ListChats handles GET /chats with ?q= search and ?type=direct|group filter
func (c *ChatController) ListChats(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Chats(listQuery(ctx, "type", func(kind string, chat models.Chat) bool {
		return string(chat.Type) == kind
	})))
}

// CreateChat opens a conversation
func (c *ChatController) CreateChat(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.CreateChatRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(w.CreateChat(req.Draft())))
}

// GetChat returns a conversation with its messages in order
func (c *ChatController) GetChat(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	chat, err := w.Chat(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chat))
}

// DeleteChat removes a conversation; missing ids are a no-op
func (c *ChatController) DeleteChat(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeleteChat(id))
}

// SendMessage appends a message; open sockets on the chat receive it too
func (c *ChatController) SendMessage(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	msg, err := w.SendMessage(ctx.Param("id"), req.Draft())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg))
}
