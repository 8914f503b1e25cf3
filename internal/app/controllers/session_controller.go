package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// SessionController handles study session scheduling
type SessionController struct{}

// NewSessionController creates a new SessionController
func NewSessionController() *SessionController {
	return &SessionController{}
}

// ListSessions handles GET /sessions with ?q= search and ?subject= filter
func (c *SessionController) ListSessions(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Sessions(listQuery(ctx, "subject", func(subject string, s models.StudySession) bool {
		return strings.EqualFold(s.Subject, subject)
	})))
}

// CreateSession handles the scheduling form
func (c *SessionController) CreateSession(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.CreateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(w.CreateSession(req.Draft())))
}

// GetSession returns one study session
func (c *SessionController) GetSession(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	session, err := w.Session(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

// DeleteSession removes a study session; missing ids are a no-op
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeleteSession(id))
}
