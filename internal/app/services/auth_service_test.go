package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/app/gateway"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

func newTestAuthService(gw *mockGateway) (AuthService, *workspace.Registry) {
	registry := workspace.NewRegistry(gw, nil, workspace.Options{}, zerolog.Nop())
	return NewAuthService(gw, registry, zerolog.Nop()), registry
}

func requireAuthError(t *testing.T, err error) *AuthError {
	t.Helper()
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	return authErr
}

func TestAuthService_SignInValidatesBeforeCallingGateway(t *testing.T) {
	tests := []struct {
		name   string
		req    dto.SignInRequest
		fields []string
	}{
		{"bad email", dto.SignInRequest{Email: "not-an-email", Password: "secret1"}, []string{"email"}},
		{"short password", dto.SignInRequest{Email: "ada@uni.edu", Password: "123"}, []string{"password"}},
		{"both empty", dto.SignInRequest{}, []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			svc, _ := newTestAuthService(gw)

			_, err := svc.SignIn(context.Background(), &tt.req)

			authErr := requireAuthError(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			for _, f := range tt.fields {
				assert.Contains(t, authErr.Form.Fields, f)
			}
			assert.Equal(t, tt.req.Email, authErr.Form.Values.Email)
			gw.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_SignInClassifiesGatewayErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, apperrors.ErrInvalidCredentials, "Invalid email or password."},
		{"backend wording", errors.New("Email not confirmed"), apperrors.ErrEmailNotConfirmed, "Please confirm your email address before signing in."},
		{"rate limited", apperrors.ErrRateLimited, apperrors.ErrRateLimited, "Too many attempts. Please wait a moment and try again."},
		{"unknown", errors.New("connection reset by peer"), apperrors.ErrBadRequest, GenericAuthMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			gw.On("SignIn", mock.Anything, "ada@uni.edu", "secret1").Return(nil, tt.err)
			svc, _ := newTestAuthService(gw)

			_, err := svc.SignIn(context.Background(), &dto.SignInRequest{Email: " ada@uni.edu ", Password: "secret1"})

			authErr := requireAuthError(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, authErr.Form.Message)
			assert.Equal(t, " ada@uni.edu ", authErr.Form.Values.Email)
		})
	}
}

func TestAuthService_SignInOpensWorkspace(t *testing.T) {
	gw := &mockGateway{}
	session := &gateway.Session{AccessToken: "tok", User: gateway.Identity{ID: "user-1", Email: "ada@uni.edu", Name: "Ada"}}
	gw.On("SignIn", mock.Anything, "ada@uni.edu", "secret1").Return(session, nil)
	gw.On("GetProfile", mock.Anything, "user-1").Return(&models.User{ID: "user-1", Name: "Ada"}, nil)
	svc, registry := newTestAuthService(gw)

	resp, err := svc.SignIn(context.Background(), &dto.SignInRequest{Email: "ada@uni.edu", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, session, resp.Session)
	assert.True(t, resp.ProfileLoaded)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Ada", resp.Profile.Name)
	assert.Equal(t, 1, registry.Len())
}

func TestAuthService_SignUpAlreadyRegistered(t *testing.T) {
	gw := &mockGateway{}
	gw.On("SignUp", mock.Anything, "ada@uni.edu", "secret1", "Ada").Return(nil, apperrors.ErrAlreadyRegistered)
	svc, _ := newTestAuthService(gw)

	_, err := svc.SignUp(context.Background(), &dto.SignUpRequest{Email: "ada@uni.edu", Password: "secret1", Name: " Ada "})

	authErr := requireAuthError(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	assert.Contains(t, authErr.Form.Fields, "email")
	assert.Equal(t, " Ada ", authErr.Form.Values.Name)
}

func TestAuthService_SignUpRequiresName(t *testing.T) {
	gw := &mockGateway{}
	svc, _ := newTestAuthService(gw)

	_, err := svc.SignUp(context.Background(), &dto.SignUpRequest{Email: "ada@uni.edu", Password: "secret1"})

	authErr := requireAuthError(t, err)
	assert.Equal(t, "Name is required.", authErr.Form.Fields["name"])
}

func TestAuthService_PasswordReset(t *testing.T) {
	gw := &mockGateway{}
	gw.On("RequestPasswordReset", mock.Anything, "ada@uni.edu").Return(nil)
	gw.On("UpdatePassword", mock.Anything, "tok", "new-secret").Return(nil)
	svc, _ := newTestAuthService(gw)
	ctx := context.Background()

	require.NoError(t, svc.RequestPasswordReset(ctx, &dto.PasswordResetRequest{Email: "ada@uni.edu"}))
	requireAuthError(t, svc.RequestPasswordReset(ctx, &dto.PasswordResetRequest{Email: "nope"}))

	require.NoError(t, svc.UpdatePassword(ctx, "tok", &dto.UpdatePasswordRequest{Password: "new-secret"}))
	authErr := requireAuthError(t, svc.UpdatePassword(ctx, "tok", &dto.UpdatePasswordRequest{Password: "123"}))
	assert.Equal(t, "Password should be at least 6 characters.", authErr.Form.Fields["password"])
	gw.AssertExpectations(t)
}

func TestClassifyAuthError(t *testing.T) {
	sentinel, message, fields := ClassifyAuthError(errors.New("Password should be at least 6 characters"))
	assert.Equal(t, apperrors.ErrWeakPassword, sentinel)
	assert.Equal(t, "Password should be at least 6 characters.", message)
	assert.Equal(t, map[string]string{"password": message}, fields)

	sentinel, message, fields = ClassifyAuthError(errors.New("boom"))
	assert.Equal(t, apperrors.ErrBadRequest, sentinel)
	assert.Equal(t, GenericAuthMessage, message)
	assert.Nil(t, fields)
}
