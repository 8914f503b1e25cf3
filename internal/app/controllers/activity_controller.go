package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/notification"
	"github.com/yigit/studyhub/internal/pkg/viewrouter"
)

// ActivityController handles the activity log, the notification queue and
// the navigation history
type ActivityController struct {
	views *viewrouter.Router[string]
	now   func() time.Time
}

// NewActivityController creates a new ActivityController
func NewActivityController(views *viewrouter.Router[string]) *ActivityController {
	return &ActivityController{
		views: views,
		now:   time.Now,
	}
}

// ListActivities handles GET /activities with ?q= search and ?type= filter
func (c *ActivityController) ListActivities(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Activities(listQuery(ctx, "type", func(kind string, a models.RecentActivity) bool {
		return string(a.Type) == kind
	})))
}

// DeleteActivity removes one log entry
func (c *ActivityController) DeleteActivity(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DeleteActivity(id))
}

// ClearActivities empties the log
func (c *ActivityController) ClearActivities(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	w.ClearActivities()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Activities cleared"}))
}

// ListNotifications returns the queue, newest first
func (c *ActivityController) ListNotifications(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	respondList(ctx, w.Notifications())
}

// PushNotification lets the client raise its own notification
func (c *ActivityController) PushNotification(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.NotifyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	kind, err := notification.ParseKind(req.Type)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(w.Notify(kind, req.Title, req.Message)))
}

// Toast returns the newest notification while it is still fresh
func (c *ActivityController) Toast(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var resp dto.ToastResponse
	if toast, fresh := w.Toast(c.now()); fresh {
		resp.Toast = &toast
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DismissNotification removes one notification; missing ids are a no-op
func (c *ActivityController) DismissNotification(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	respondDeleted(ctx, id, w.DismissNotification(id))
}

// ClearNotifications empties the queue
func (c *ActivityController) ClearNotifications(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	w.ClearNotifications()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Notifications cleared"}))
}

// GetNavigation returns the navigation history
func (c *ActivityController) GetNavigation(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(w.Navigation()))
}

// Navigate pushes a view
func (c *ActivityController) Navigate(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	var req dto.NavigateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(w.Navigate(strings.TrimSpace(req.View))))
}

// Back returns to the previous view; at the root it leaves the history as is
func (c *ActivityController) Back(ctx *gin.Context) {
	w, ok := workspaceOf(ctx)
	if !ok {
		return
	}
	snapshot, _ := w.Back()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(snapshot))
}

// View resolves the screen to render. It runs with optional auth: anonymous
// callers are routed to the auth screen for everything but home. Without
// ?view= the current navigation entry is used.
func (c *ActivityController) View(ctx *gin.Context) {
	resp := dto.ViewResponse{View: strings.TrimSpace(ctx.Query("view"))}

	w, authenticated := middleware.CurrentWorkspace(ctx)
	if authenticated {
		resp.Authenticated = true
		resp.ProfileLoaded = w.ProfileLoaded()
		resp.Navigation = w.Navigation()
		if resp.View == "" {
			resp.View = resp.Navigation.Current
		}
	}
	if resp.View == "" {
		resp.View = viewrouter.ViewHome
	}

	resp.Screen = c.views.Resolve(viewrouter.State{
		Authenticated: resp.Authenticated,
		ProfileLoaded: resp.ProfileLoaded,
		View:          resp.View,
	})
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
