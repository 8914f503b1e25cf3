package apperrors

import "errors"

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrNotImplemented   = errors.New("not implemented")
)

// Authentication errors. Messages are matched by substring at the auth
// boundary, so keep them aligned with what identity backends return.
var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrRateLimited        = errors.New("too many requests")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidRecovery    = errors.New("invalid or expired recovery token")
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrPermissionDenied = errors.New("permission denied")
)

var (
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrNoteNotFound         = errors.New("note not found")
	ErrFlipCardSetNotFound  = errors.New("flashcard set not found")
	ErrCommunityNotFound    = errors.New("community not found")
	ErrStudySessionNotFound = errors.New("study session not found")
	ErrInfovidNotFound      = errors.New("infovid not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrChatNotFound         = errors.New("chat not found")
	ErrPostNotFound         = errors.New("post not found")
)

// CustomError keeps a sentinel for classification while carrying the
// message shown to the user. Code, when set, overrides the mapped API code.
type CustomError struct {
	Err     error
	Message string
	Code    string
}

func (e *CustomError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

func (e *CustomError) Unwrap() error { return e.Err }

// NewCustomError wraps sentinel with a user-facing message.
func NewCustomError(sentinel error, message string) *CustomError {
	return &CustomError{Err: sentinel, Message: message}
}

func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// NewNotImplementedError marks an action that is routed but has no effect.
func NewNotImplementedError(action string) error {
	return &CustomError{Err: ErrNotImplemented, Message: action + " is not implemented", Code: "NOT_IMPLEMENTED"}
}
