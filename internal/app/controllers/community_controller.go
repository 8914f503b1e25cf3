package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
)

// CommunityController handles communities, their members and their feeds
type CommunityController struct{}

// NewCommunityController creates a new CommunityController
func NewCommunityController() *CommunityController {
	return &CommunityController{}
}

// ListCommunities handles GET /communities with ?q= search and the
// ?joined=true|false membership filter
func (c *CommunityController) ListCommunities(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Communities(listQuery(ctx, "joined", func(value string, community models.Community) bool {
		joined, err := strconv.ParseBool(value)
		return err != nil || community.IsMember == joined
	})))
}

// CreateCommunity handles the community form; the creator joins it
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.CreateCommunityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(w.CreateCommunity(req.Draft())))
}

// GetCommunity returns one community as seen by the caller
func (c *CommunityController) GetCommunity(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	community, err := w.Community(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// DeleteCommunity removes a community; its posts and memberships stay
func (c *CommunityController) DeleteCommunity(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeleteCommunity(id))
}

// ListMembers returns the ids of the community's members
func (c *CommunityController) ListMembers(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	members, err := w.Members(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// JoinCommunity adds the caller to the community
func (c *CommunityController) JoinCommunity(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	community, err := w.JoinCommunity(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// LeaveCommunity removes the caller from the community
func (c *CommunityController) LeaveCommunity(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	community, err := w.LeaveCommunity(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// ListPosts returns the community feed, newest first, with ?q= search and
// ?author= filter. Posts outlive their community.
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	query := listQuery(ctx, "author", func(author string, p models.Post) bool {
		return p.AuthorID == author
	})
	respondList(ctx, query.Apply(w.Posts(ctx.Param("id"))))
}

// CreatePost publishes a post to the community feed
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	post, err := w.CreatePost(ctx.Param("id"), req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// DeletePost removes a post; missing ids are a no-op
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeletePost(id))
}
