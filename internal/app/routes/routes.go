package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/studyhub/internal/app/controllers"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/websocket"
)

// Controllers groups every handler the router binds
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Note       *controllers.NoteController
	Flashcard  *controllers.FlashcardController
	Community  *controllers.CommunityController
	Session    *controllers.SessionController
	Infovid    *controllers.InfovidController
	Course     *controllers.CourseController
	Chat       *controllers.ChatController
	Activity   *controllers.ActivityController
	ChatSocket *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/sign-up", c.Auth.SignUp)
		auth.POST("/sign-in", c.Auth.SignIn)
		auth.POST("/password-reset", c.Auth.RequestPasswordReset)
		auth.POST("/password-recovery", c.Auth.ExchangeRecoveryToken)
	}

	// The view router decides for anonymous callers too
	v1.GET("/view", authMiddleware.OptionalSession(), c.Activity.View)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.RequireSession())

	authProtected := authenticated.Group("/auth")
	{
		authProtected.POST("/sign-out", c.Auth.SignOut)
		authProtected.GET("/session", c.Auth.GetSession)
		authProtected.PUT("/password", c.Auth.UpdatePassword)
	}

	me := authenticated.Group("/me")
	{
		me.GET("/profile", c.User.GetProfile)
		me.PUT("/profile", c.User.UpdateProfile)
		me.POST("/profile/picture", c.User.UploadProfilePicture)
	}

	users := authenticated.Group("/users")
	{
		users.GET("/:id", c.User.GetUser)
		users.POST("/:id/follow", c.User.Follow)
		users.DELETE("/:id/follow", c.User.Unfollow)
	}
	authenticated.GET("/follows", c.User.ListFollows)

	notes := authenticated.Group("/notes")
	{
		notes.GET("", c.Note.ListNotes)
		notes.POST("", c.Note.CreateNote)
		notes.GET("/:id", c.Note.GetNote)
		notes.DELETE("/:id", c.Note.DeleteNote)
		notes.POST("/:id/poster", c.Note.UploadPoster)
		notes.POST("/:id/save", c.Note.SaveNote)
	}

	flashcards := authenticated.Group("/flashcards")
	{
		flashcards.GET("", c.Flashcard.ListSets)
		flashcards.POST("", c.Flashcard.CreateSet)
		flashcards.GET("/:id", c.Flashcard.GetSet)
		flashcards.DELETE("/:id", c.Flashcard.DeleteSet)
		flashcards.POST("/:id/save", c.Flashcard.SaveSet)
	}

	communities := authenticated.Group("/communities")
	{
		communities.GET("", c.Community.ListCommunities)
		communities.POST("", c.Community.CreateCommunity)
		communities.GET("/:id", c.Community.GetCommunity)
		communities.DELETE("/:id", c.Community.DeleteCommunity)
		communities.GET("/:id/members", c.Community.ListMembers)
		communities.POST("/:id/members", c.Community.JoinCommunity)
		communities.DELETE("/:id/members", c.Community.LeaveCommunity)
		communities.GET("/:id/posts", c.Community.ListPosts)
		communities.POST("/:id/posts", c.Community.CreatePost)
	}
	authenticated.DELETE("/posts/:id", c.Community.DeletePost)

	sessions := authenticated.Group("/sessions")
	{
		sessions.GET("", c.Session.ListSessions)
		sessions.POST("", c.Session.CreateSession)
		sessions.GET("/:id", c.Session.GetSession)
		sessions.DELETE("/:id", c.Session.DeleteSession)
	}

	infovids := authenticated.Group("/infovids")
	{
		infovids.GET("", c.Infovid.ListInfovids)
		infovids.POST("", c.Infovid.CreateInfovid)
		infovids.GET("/:id", c.Infovid.GetInfovid)
		infovids.DELETE("/:id", c.Infovid.DeleteInfovid)
		infovids.POST("/:id/like", c.Infovid.LikeInfovid)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", c.Course.ListCourses)
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/:id", c.Course.GetCourse)
		courses.DELETE("/:id", c.Course.DeleteCourse)
		courses.POST("/:id/purchase", c.Course.PurchaseCourse)
	}
	authenticated.GET("/purchases", c.Course.ListPurchases)

	chats := authenticated.Group("/chats")
	{
		chats.GET("", c.Chat.ListChats)
		chats.POST("", c.Chat.CreateChat)
		chats.GET("/:id", c.Chat.GetChat)
		chats.DELETE("/:id", c.Chat.DeleteChat)
		chats.POST("/:id/messages", c.Chat.SendMessage)
		if c.ChatSocket != nil {
			chats.GET("/:id/ws", c.ChatSocket.HandleConnection)
		}
	}

	activities := authenticated.Group("/activities")
	{
		activities.GET("", c.Activity.ListActivities)
		activities.DELETE("/:id", c.Activity.DeleteActivity)
		activities.DELETE("", c.Activity.ClearActivities)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", c.Activity.ListNotifications)
		notifications.POST("", c.Activity.PushNotification)
		notifications.GET("/toast", c.Activity.Toast)
		notifications.DELETE("/:id", c.Activity.DismissNotification)
		notifications.DELETE("", c.Activity.ClearNotifications)
	}

	navigation := authenticated.Group("/navigation")
	{
		navigation.GET("", c.Activity.GetNavigation)
		navigation.POST("", c.Activity.Navigate)
		navigation.POST("/back", c.Activity.Back)
	}
}
