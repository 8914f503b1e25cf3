package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// FlashcardController handles flashcard deck operations
type FlashcardController struct{}

// NewFlashcardController creates a new FlashcardController
func NewFlashcardController() *FlashcardController {
	return &FlashcardController{}
}

// ListSets handles GET /flashcards with ?q= search and ?tag= filter
func (c *FlashcardController) ListSets(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.FlipCardSets(listQuery(ctx, "tag", func(tag string, s models.FlipCardSet) bool {
		return byTag(tag, s.Tags)
	})))
}

// CreateSet handles the deck form
func (c *FlashcardController) CreateSet(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.CreateFlipCardSetRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(w.CreateFlipCardSet(req.Draft())))
}

// GetSet returns one deck
func (c *FlashcardController) GetSet(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	set, err := w.FlipCardSet(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(set))
}

// DeleteSet removes a deck; missing ids are a no-op
func (c *FlashcardController) DeleteSet(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeleteFlipCardSet(id))
}

// SaveSet is exposed for the save button; saving has no behavior yet
func (c *FlashcardController) SaveSet(ctx *gin.Context) {
	respondNotImplemented(ctx, "Saving a flashcard set")
}
