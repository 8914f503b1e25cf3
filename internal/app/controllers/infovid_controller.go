package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// InfovidController handles the short video feed
type InfovidController struct{}

// NewInfovidController creates a new InfovidController
func NewInfovidController() *InfovidController {
	return &InfovidController{}
}

// ListInfovids handles GET /infovids with ?q= search and ?subject= filter
func (c *InfovidController) ListInfovids(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Infovids(listQuery(ctx, "subject", func(subject string, v models.VideoReel) bool {
		return strings.EqualFold(v.Subject, subject)
	})))
}

// CreateInfovid handles the upload form
func (c *InfovidController) CreateInfovid(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.CreateInfovidRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(w.CreateInfovid(req.Draft())))
}

// GetInfovid returns one infovid
func (c *InfovidController) GetInfovid(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	video, err := w.Infovid(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(video))
}

// DeleteInfovid removes an infovid; missing ids are a no-op
func (c *InfovidController) DeleteInfovid(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeleteInfovid(id))
}

// LikeInfovid is exposed for the like button; liking has no behavior yet
func (c *InfovidController) LikeInfovid(ctx *gin.Context) {
	respondNotImplemented(ctx, "Liking an infovid")
}
