package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// detailer is implemented by errors that carry a structured payload for the
// client, such as a failed auth form.
type detailer interface {
	ErrorDetails() interface{}
}

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings are checked in order; the first match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotImplemented, http.StatusNotImplemented, dto.ErrorCodeNotImplemented, "Not implemented"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrEmailNotConfirmed, http.StatusForbidden, dto.ErrorCodeEmailNotConfirmed, "Email not confirmed"},
	{apperrors.ErrAlreadyRegistered, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "User already registered"},
	{apperrors.ErrWeakPassword, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Password too weak"},
	{apperrors.ErrRateLimited, http.StatusTooManyRequests, dto.ErrorCodeRateLimited, "Too many requests"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrSessionNotFound, http.StatusUnauthorized, dto.ErrorCodeSessionNotFound, "Session not found"},
	{apperrors.ErrInvalidRecovery, http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Invalid or expired recovery token"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrNoteNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Note not found"},
	{apperrors.ErrFlipCardSetNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Flashcard set not found"},
	{apperrors.ErrCommunityNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Community not found"},
	{apperrors.ErrStudySessionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Study session not found"},
	{apperrors.ErrInfovidNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Infovid not found"},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
	{apperrors.ErrChatNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Chat not found"},
	{apperrors.ErrPostNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Post not found"},
	{apperrors.ErrWorkspaceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Workspace not found"},
}

// ErrorStatus returns the HTTP status and the error detail for err.
func ErrorStatus(err error) (int, *dto.ErrorDetail) {
	status := http.StatusInternalServerError
	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status = m.status
			detail = dto.NewErrorDetail(m.code, m.message)
			break
		}
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && status != http.StatusInternalServerError {
		detail.Message = custom.Error()
		if custom.Code != "" {
			detail.Code = dto.ErrorCode(custom.Code)
		}
	}

	var d detailer
	if errors.As(err, &d) {
		detail.Message = err.Error()
		detail.WithDetails(d.ErrorDetails())
	}

	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		detail.WithSeverity(dto.ErrorSeverityCritical)
	}
	return status, detail
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.APIResponse{Error: detail})
}
