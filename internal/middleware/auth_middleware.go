package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/gateway"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextSession     = "session"
	ContextAccessToken = "accessToken"
	ContextUserID      = "userID"
	ContextWorkspace   = "workspace"
)

// AuthMiddleware authenticates requests against the session gateway and
// attaches the caller's workspace.
type AuthMiddleware struct {
	gateway  gateway.Gateway
	registry *workspace.Registry
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(gw gateway.Gateway, registry *workspace.Registry) *AuthMiddleware {
	return &AuthMiddleware{
		gateway:  gw,
		registry: registry,
	}
}

// RequireSession rejects requests without a valid access token. A session
// whose workspace is gone, for example after a restart, gets it reopened.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{Error: errorDetail})
			return
		}

		session, err := m.gateway.GetSession(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		m.attach(c, token, session)
		c.Next()
	}
}

// OptionalSession attaches the session when a valid token is present and
// lets anonymous requests through.
func (m *AuthMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if session, err := m.gateway.GetSession(c.Request.Context(), token); err == nil {
				m.attach(c, token, session)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) attach(c *gin.Context, token string, session *gateway.Session) {
	c.Set(ContextAccessToken, token)
	c.Set(ContextSession, session)
	c.Set(ContextUserID, session.User.ID)
	c.Set(ContextWorkspace, m.registry.Open(c.Request.Context(), session.User.ID))
}

// bearerToken reads the token from the Authorization header, or from the
// token query parameter for websocket clients that cannot set headers.
func bearerToken(c *gin.Context) string {
	header := strings.Trim(c.GetHeader("Authorization"), "\"'")
	if header == "" {
		return c.Query("token")
	}
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentSession returns the session attached by the auth middleware.
func CurrentSession(c *gin.Context) (*gateway.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*gateway.Session)
	return session, ok
}

// CurrentWorkspace returns the caller's workspace.
func CurrentWorkspace(c *gin.Context) (*workspace.Workspace, bool) {
	v, ok := c.Get(ContextWorkspace)
	if !ok {
		return nil, false
	}
	w, ok := v.(*workspace.Workspace)
	return w, ok
}

// AccessToken returns the raw access token of the request.
func AccessToken(c *gin.Context) string {
	return c.GetString(ContextAccessToken)
}
