package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/app/services"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// UserController handles the profile and the follow graph
type UserController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(profileService services.ProfileService, logger zerolog.Logger) *UserController {
	return &UserController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile returns the caller's profile as held by the workspace
func (c *UserController) GetProfile(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	profile, _ := w.Profile()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile merges the form into the profile and persists the row
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), w, req.Patch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UploadProfilePicture stores the multipart "picture" image as the avatar
func (c *UserController) UploadProfilePicture(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	file, err := ctx.FormFile("picture")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("picture file is required"))
		return
	}

	profile, err := c.profileService.UploadProfilePicture(ctx.Request.Context(), w, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// GetUser returns another user's profile row
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.profileService.GetUser(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// Follow follows a user. Following twice keeps the first follow.
func (c *UserController) Follow(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.FollowRequest
	if ctx.Request.ContentLength > 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	follow, err := c.profileService.Follow(ctx.Request.Context(), w, ctx.Param("id"), req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(follow))
}

// Unfollow stops following a user; not following is a no-op
func (c *UserController) Unfollow(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, c.profileService.Unfollow(ctx.Request.Context(), w, id))
}

// ListFollows returns who the caller follows
func (c *UserController) ListFollows(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Follows())
}
