// Package gateway is the boundary to the identity backend: sign-in, sign-up,
// sessions, password recovery and the users profile table.
package gateway

import (
	"context"
	"time"

	"github.com/yigit/studyhub/internal/app/models"
)

// Identity is the signed-in principal carried by a session.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is an authenticated session issued by the identity backend.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	TokenType    string    `json:"tokenType"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         Identity  `json:"user"`
}

// Gateway is implemented by every identity backend.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, name string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetSession(ctx context.Context, accessToken string) (*Session, error)
	OnAuthStateChange(listener Listener) (unsubscribe func())

	RequestPasswordReset(ctx context.Context, email string) error
	ExchangeRecoveryToken(ctx context.Context, token string) (*Session, error)
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error

	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}
