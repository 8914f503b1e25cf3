// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
	"github.com/yigit/studyhub/internal/pkg/helpers"
)

// workspaceOf returns the caller's workspace, writing a 401 when the route
// is not behind the auth middleware.
func workspaceOf(ctx *gin.Context) (*workspace.Workspace, bool) {
	w, ok := middleware.CurrentWorkspace(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	}
	return w, ok
}

// listQuery builds the list filter from ?q= and one dropdown parameter.
func listQuery[T collection.Searchable](ctx *gin.Context, param string, match func(value string, item T) bool) collection.Query[T] {
	q := collection.Query[T]{Search: ctx.Query("q")}
	if value := strings.TrimSpace(ctx.Query(param)); value != "" && match != nil {
		q.Match = func(item T) bool { return match(value, item) }
	}
	return q
}

func byTag(value string, tags []string) bool {
	return collection.HasTag(tags, value)
}

func respondList[T any](ctx *gin.Context, items []T) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(helpers.PaginateQuery(ctx, items)))
}

func respondDeleted(ctx *gin.Context, id string, removed bool) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DeleteResponse{ID: id, Removed: removed}))
}

func respondNotImplemented(ctx *gin.Context, action string) {
	middleware.HandleAPIError(ctx, apperrors.NewNotImplementedError(action))
}
