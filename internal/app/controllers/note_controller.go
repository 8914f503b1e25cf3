package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/app/services"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// NoteController handles note related operations
type NoteController struct {
	noteService services.NoteService
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService: noteService,
		logger:      logger,
	}
}

// ListNotes handles GET /notes with ?q= search and ?tag= filter
func (c *NoteController) ListNotes(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Notes(listQuery(ctx, "tag", func(tag string, n models.Note) bool {
		return byTag(tag, n.Tags)
	})))
}

// CreateNote handles the note upload form
func (c *NoteController) CreateNote(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(w.CreateNote(req.Draft())))
}

// GetNote returns one note
func (c *NoteController) GetNote(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	note, err := w.Note(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// DeleteNote removes a note; missing ids are a no-op
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeleteNote(id))
}

// UploadPoster stores the multipart "poster" image as the note's poster
func (c *NoteController) UploadPoster(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	file, err := ctx.FormFile("poster")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("poster file is required"))
		return
	}

	note, err := c.noteService.UploadPoster(ctx.Request.Context(), w, ctx.Param("id"), file)
	if err != nil {
		c.logger.Debug().Err(err).Str("note_id", ctx.Param("id")).Msg("Poster upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// SaveNote is exposed for the save button; saving has no behavior yet
func (c *NoteController) SaveNote(ctx *gin.Context) {
	respondNotImplemented(ctx, "Saving a note")
}
