package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/app/services"
	"github.com/yigit/studyhub/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// SignUp handles user registration. Field errors come back with the
// submitted values so the form can be redisplayed.
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.SignUp(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("user_id", resp.Session.User.ID).Msg("User registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// SignIn handles user login
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.SignIn(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SignOut revokes the caller's session
func (c *AuthController) SignOut(ctx *gin.Context) {
	if err := c.authService.SignOut(ctx.Request.Context(), middleware.AccessToken(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Signed out"}))
}

// GetSession returns the caller's session and whether the profile has loaded
func (c *AuthController) GetSession(ctx *gin.Context) {
	session, ok := middleware.CurrentSession(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.authService.Session(ctx.Request.Context(), session)))
}

// RequestPasswordReset mails a recovery link. The response is the same
// whether or not the address has an account.
func (c *AuthController) RequestPasswordReset(ctx *gin.Context) {
	var req dto.PasswordResetRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.RequestPasswordReset(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{
		Message: "If an account exists for this email, a reset link has been sent.",
	}))
}

// ExchangeRecoveryToken turns a reset link token into a session
func (c *AuthController) ExchangeRecoveryToken(ctx *gin.Context) {
	var req dto.PasswordRecoveryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.ExchangeRecoveryToken(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdatePassword sets a new password for the caller
func (c *AuthController) UpdatePassword(ctx *gin.Context) {
	var req dto.UpdatePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.UpdatePassword(ctx.Request.Context(), middleware.AccessToken(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Password updated"}))
}
