package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/gateway"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// GenericAuthMessage is shown for auth failures that match no known case.
const GenericAuthMessage = "Something went wrong. Please try again later."

// AuthError is a failed auth form submission. It unwraps to the sentinel
// that best describes the failure so the error middleware can map it.
type AuthError struct {
	Err  error
	Form dto.AuthFormError
}

// Error implements error interface
func (e *AuthError) Error() string {
	return e.Form.Message
}

// Unwrap implements errors.Unwrap interface
func (e *AuthError) Unwrap() error {
	return e.Err
}

// ErrorDetails exposes the form payload to the error middleware
func (e *AuthError) ErrorDetails() interface{} {
	return e.Form
}

// AuthService handles the auth forms on top of the session gateway
type AuthService interface {
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SessionResponse, error)
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error)
	SignOut(ctx context.Context, accessToken string) error
	Session(ctx context.Context, session *gateway.Session) *dto.SessionResponse
	RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error
	ExchangeRecoveryToken(ctx context.Context, req *dto.PasswordRecoveryRequest) (*dto.SessionResponse, error)
	UpdatePassword(ctx context.Context, accessToken string, req *dto.UpdatePasswordRequest) error
}

type authServiceImpl struct {
	gateway  gateway.Gateway
	registry *workspace.Registry
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(gw gateway.Gateway, registry *workspace.Registry, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		gateway:  gw,
		registry: registry,
		validate: validator.New(),
		logger:   logger,
	}
}

type credentialsInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type signUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"required"`
}

type emailInput struct {
	Email string `validate:"required,email"`
}

type passwordInput struct {
	Password string `validate:"required,min=6"`
}

// SignIn validates the form and signs the user in
func (s *authServiceImpl) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SessionResponse, error) {
	values := dto.AuthFormValues{Email: req.Email}
	if err := s.check(credentialsInput{Email: strings.TrimSpace(req.Email), Password: req.Password}, values); err != nil {
		return nil, err
	}

	session, err := s.gateway.SignIn(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Sign-in failed")
		return nil, s.classify(err, values)
	}

	return s.Session(ctx, session), nil
}

// SignUp validates the form and registers the user
func (s *authServiceImpl) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error) {
	values := dto.AuthFormValues{Email: req.Email, Name: req.Name}
	input := signUpInput{Email: strings.TrimSpace(req.Email), Password: req.Password, Name: strings.TrimSpace(req.Name)}
	if err := s.check(input, values); err != nil {
		return nil, err
	}

	session, err := s.gateway.SignUp(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Sign-up failed")
		return nil, s.classify(err, values)
	}

	return s.Session(ctx, session), nil
}

// SignOut ends the session
func (s *authServiceImpl) SignOut(ctx context.Context, accessToken string) error {
	return s.gateway.SignOut(ctx, accessToken)
}

// Session describes a session together with the state of its workspace
func (s *authServiceImpl) Session(ctx context.Context, session *gateway.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{Session: session}
	if s.registry == nil {
		return resp
	}

	w := s.registry.Open(ctx, session.User.ID)
	profile, loaded := w.Profile()
	resp.ProfileLoaded = loaded
	if loaded {
		resp.Profile = &profile
	}
	return resp
}

// RequestPasswordReset validates the address and asks for a recovery link
func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error {
	values := dto.AuthFormValues{Email: req.Email}
	if err := s.check(emailInput{Email: strings.TrimSpace(req.Email)}, values); err != nil {
		return err
	}

	if err := s.gateway.RequestPasswordReset(ctx, strings.TrimSpace(req.Email)); err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Password reset request failed")
		return s.classify(err, values)
	}
	return nil
}

// ExchangeRecoveryToken opens a recovery session from a reset link token
func (s *authServiceImpl) ExchangeRecoveryToken(ctx context.Context, req *dto.PasswordRecoveryRequest) (*dto.SessionResponse, error) {
	session, err := s.gateway.ExchangeRecoveryToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Session: session}, nil
}

// UpdatePassword validates and sets a new password
func (s *authServiceImpl) UpdatePassword(ctx context.Context, accessToken string, req *dto.UpdatePasswordRequest) error {
	if err := s.check(passwordInput{Password: req.Password}, dto.AuthFormValues{}); err != nil {
		return err
	}

	if err := s.gateway.UpdatePassword(ctx, accessToken, req.Password); err != nil {
		s.logger.Warn().Err(err).Msg("Password update failed")
		return s.classify(err, dto.AuthFormValues{})
	}
	return nil
}

// check runs the format checks that happen before anything is sent to the
// identity backend.
func (s *authServiceImpl) check(input interface{}, values dto.AuthFormValues) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return &AuthError{
		Err:  apperrors.ErrValidationFailed,
		Form: dto.AuthFormError{Message: "Please correct the highlighted fields.", Fields: fields, Values: values},
	}
}

// classify turns a gateway failure into a form error. Context and
// transport failures are passed through untouched.
func (s *authServiceImpl) classify(err error, values dto.AuthFormValues) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	sentinel, message, fields := ClassifyAuthError(err)
	return &AuthError{Err: sentinel, Form: dto.AuthFormError{Message: message, Fields: fields, Values: values}}
}

type authCase struct {
	match    string
	sentinel error
	message  string
	field    string
}

// authCases are matched in order against the lowercased error message.
var authCases = []authCase{
	{"invalid login credentials", apperrors.ErrInvalidCredentials, "Invalid email or password.", ""},
	{"email not confirmed", apperrors.ErrEmailNotConfirmed, "Please confirm your email address before signing in.", "email"},
	{"already registered", apperrors.ErrAlreadyRegistered, "An account with this email already exists.", "email"},
	{"password should be", apperrors.ErrWeakPassword, "Password should be at least 6 characters.", "password"},
	{"too many requests", apperrors.ErrRateLimited, "Too many attempts. Please wait a moment and try again.", ""},
	{"rate limit", apperrors.ErrRateLimited, "Too many attempts. Please wait a moment and try again.", ""},
	{"user not found", apperrors.ErrUserNotFound, "No account found with this email.", "email"},
	{"invalid or expired recovery token", apperrors.ErrInvalidRecovery, "This reset link is invalid or has expired.", ""},
}

// ClassifyAuthError matches err's message against the known auth failures.
// Anything unrecognized gets the generic message and ErrBadRequest.
func ClassifyAuthError(err error) (sentinel error, message string, fields map[string]string) {
	text := strings.ToLower(err.Error())
	for _, c := range authCases {
		if !strings.Contains(text, c.match) {
			continue
		}
		if c.field != "" {
			fields = map[string]string{c.field: c.message}
		}
		return c.sentinel, c.message, fields
	}
	return apperrors.ErrBadRequest, GenericAuthMessage, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return "Email is required."
		}
		return "Please enter a valid email address."
	case "Password":
		if fe.Tag() == "required" {
			return "Password is required."
		}
		return "Password should be at least 6 characters."
	case "Name":
		return "Name is required."
	default:
		return dto.FormatFieldError(fe)
	}
}
