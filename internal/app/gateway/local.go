package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/repositories"
	"github.com/yigit/studyhub/internal/db"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/auth"
	"github.com/yigit/studyhub/internal/pkg/email"
	"github.com/yigit/studyhub/internal/pkg/idgen"
)

const (
	defaultResetTTL      = time.Hour
	defaultSignInWindow  = time.Minute
	defaultSignInAttempt = 10

	sessionKeyPrefix  = "session:"
	recoveryKeyPrefix = "recovery:"
	signInKeyPrefix   = "signin:"
)

// UserStore persists profile rows and password hashes.
type UserStore interface {
	Create(ctx context.Context, user *models.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	GetCredentials(ctx context.Context, email string) (*repositories.Credentials, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// KeyValueStore keeps sessions, recovery tokens and sign-in counters.
type KeyValueStore interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	IncrWithExpire(ctx context.Context, key string, expiration time.Duration) (int64, error)
}

// LocalConfig configures the local gateway.
type LocalConfig struct {
	Users  UserStore
	Store  KeyValueStore
	Tokens *auth.JWTService
	Mailer email.Sender
	Logger zerolog.Logger

	// SignInAttempts is the number of sign-in attempts allowed per email
	// within SignInWindow.
	SignInAttempts int
	SignInWindow   time.Duration
	ResetTTL       time.Duration

	IDs   idgen.Generator
	Clock func() time.Time
}

// Local is the Gateway backed by PostgreSQL and a session store.
type Local struct {
	*Broadcaster

	users  UserStore
	store  KeyValueStore
	tokens *auth.JWTService
	mailer email.Sender
	log    zerolog.Logger

	signInAttempts int
	signInWindow   time.Duration
	resetTTL       time.Duration

	ids idgen.Generator
	now func() time.Time
}

var _ Gateway = (*Local)(nil)

// NewLocal creates the local gateway.
func NewLocal(cfg LocalConfig) *Local {
	g := &Local{
		Broadcaster:    NewBroadcaster(cfg.Logger),
		users:          cfg.Users,
		store:          cfg.Store,
		tokens:         cfg.Tokens,
		mailer:         cfg.Mailer,
		log:            cfg.Logger,
		signInAttempts: cfg.SignInAttempts,
		signInWindow:   cfg.SignInWindow,
		resetTTL:       cfg.ResetTTL,
		ids:            cfg.IDs,
		now:            cfg.Clock,
	}
	if g.signInAttempts <= 0 {
		g.signInAttempts = defaultSignInAttempt
	}
	if g.signInWindow <= 0 {
		g.signInWindow = defaultSignInWindow
	}
	if g.resetTTL <= 0 {
		g.resetTTL = defaultResetTTL
	}
	if g.ids == nil {
		g.ids = idgen.NewULIDGenerator()
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// SignIn checks the password and opens a session.
func (g *Local) SignIn(ctx context.Context, emailAddr, password string) (*Session, error) {
	emailAddr = normalizeEmail(emailAddr)

	attempts, err := g.store.IncrWithExpire(ctx, signInKeyPrefix+emailAddr, g.signInWindow)
	if err != nil {
		return nil, fmt.Errorf("count sign-in attempts: %w", err)
	}
	if attempts > int64(g.signInAttempts) {
		g.log.Warn().Str("email", emailAddr).Int64("attempts", attempts).Msg("Sign-in rate limited")
		return nil, apperrors.ErrRateLimited
	}

	creds, err := g.users.GetCredentials(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(creds.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := g.users.GetByID(ctx, creds.UserID)
	if err != nil {
		return nil, err
	}

	session, err := g.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	_ = g.store.Delete(ctx, signInKeyPrefix+emailAddr)

	g.log.Info().Str("user_id", user.ID).Msg("User signed in")
	g.Emit(AuthEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

// SignUp creates the credentials and the users row, then opens a session.
func (g *Local) SignUp(ctx context.Context, emailAddr, password, name string) (*Session, error) {
	if !auth.PasswordAcceptable(password) {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := g.now()
	user := &models.User{
		ID:                g.ids.NewID(),
		Name:              strings.TrimSpace(name),
		Email:             normalizeEmail(emailAddr),
		ProfileVisibility: models.VisibilityPublic,
		JoinDate:          now,
		CreatedAt:         now,
	}
	if err := g.users.Create(ctx, user, hash); err != nil {
		return nil, err
	}

	session, err := g.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	g.log.Info().Str("user_id", user.ID).Msg("User signed up")
	g.Emit(AuthEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

// SignOut revokes the session behind accessToken.
func (g *Local) SignOut(ctx context.Context, accessToken string) error {
	session, claims, err := g.lookup(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := g.store.Delete(ctx, sessionKeyPrefix+claims.ID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	g.log.Info().Str("user_id", claims.UserID).Msg("User signed out")
	g.Emit(AuthEvent{Type: EventSignedOut, Session: session})
	return nil
}

// GetSession validates accessToken against the session store.
func (g *Local) GetSession(ctx context.Context, accessToken string) (*Session, error) {
	session, _, err := g.lookup(ctx, accessToken)
	return session, err
}

// RequestPasswordReset mails a recovery link. Unknown addresses succeed
// silently so the endpoint cannot be used to probe accounts.
func (g *Local) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := g.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			g.log.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.New().String()
	if err := g.store.Set(ctx, recoveryKeyPrefix+token, user.ID, g.resetTTL); err != nil {
		return fmt.Errorf("store recovery token: %w", err)
	}

	if g.mailer != nil {
		if err := g.mailer.SendPasswordReset(ctx, user.Email, user.Name, token); err != nil {
			g.log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to send password reset email")
			return err
		}
	}
	return nil
}

// ExchangeRecoveryToken consumes a recovery token and opens a session in
// which the password can be changed.
func (g *Local) ExchangeRecoveryToken(ctx context.Context, token string) (*Session, error) {
	key := recoveryKeyPrefix + token
	userID, err := g.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, apperrors.ErrInvalidRecovery
		}
		return nil, fmt.Errorf("load recovery token: %w", err)
	}
	_ = g.store.Delete(ctx, key)

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	session, err := g.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	g.Emit(AuthEvent{Type: EventPasswordRecovery, Session: session})
	return session, nil
}

// UpdatePassword changes the password of the session's user.
func (g *Local) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	session, _, err := g.lookup(ctx, accessToken)
	if err != nil {
		return err
	}
	if !auth.PasswordAcceptable(newPassword) {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := g.users.UpdatePassword(ctx, session.User.ID, hash); err != nil {
		return err
	}

	g.log.Info().Str("user_id", session.User.ID).Msg("Password updated")
	g.Emit(AuthEvent{Type: EventUserUpdated, Session: session})
	return nil
}

// GetProfile returns the users row.
func (g *Local) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return g.users.GetByID(ctx, userID)
}

// UpdateProfile writes the users row back.
func (g *Local) UpdateProfile(ctx context.Context, user *models.User) error {
	return g.users.Update(ctx, user)
}

func (g *Local) openSession(ctx context.Context, user *models.User) (*Session, error) {
	issued, err := g.tokens.GenerateAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	ttl := issued.ExpiresAt.Sub(g.now())
	if err := g.store.Set(ctx, sessionKeyPrefix+issued.SessionID, user.ID, ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &Session{
		AccessToken: issued.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   issued.ExpiresAt,
		User:        Identity{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

func (g *Local) lookup(ctx context.Context, accessToken string) (*Session, *auth.Claims, error) {
	claims, err := g.tokens.ValidateToken(accessToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, apperrors.ErrTokenExpired
		}
		return nil, nil, apperrors.ErrTokenInvalid
	}

	userID, err := g.store.Get(ctx, sessionKeyPrefix+claims.ID)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil, apperrors.ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("load session: %w", err)
	}
	if userID != claims.UserID {
		return nil, nil, apperrors.ErrTokenInvalid
	}

	return &Session{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        Identity{ID: claims.UserID, Email: claims.Email, Name: claims.Name},
	}, claims, nil
}

func normalizeEmail(emailAddr string) string {
	return strings.ToLower(strings.TrimSpace(emailAddr))
}
