package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// RemoteConfig configures the remote gateway.
type RemoteConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Remote is the Gateway backed by a hosted identity service speaking the
// GoTrue and PostgREST protocols.
type Remote struct {
	*Broadcaster

	client  *resty.Client
	anonKey string
	log     zerolog.Logger
}

var _ Gateway = (*Remote)(nil)

// NewRemote creates the remote gateway.
func NewRemote(cfg RemoteConfig) *Remote {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Remote{
		Broadcaster: NewBroadcaster(cfg.Logger),
		client:      client,
		anonKey:     cfg.AnonKey,
		log:         cfg.Logger,
	}
}

type remoteUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

func (u remoteUser) identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.UserMetadata.Name}
}

type remoteSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	ExpiresAt    int64      `json:"expires_at"`
	User         remoteUser `json:"user"`
}

func (s remoteSession) session() *Session {
	out := &Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		User:         s.User.identity(),
	}
	if s.ExpiresAt > 0 {
		out.ExpiresAt = time.Unix(s.ExpiresAt, 0)
	}
	return out
}

// remoteFailure covers the error body shapes the backend uses.
type remoteFailure struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (f remoteFailure) text() string {
	for _, s := range []string{f.ErrorDescription, f.Msg, f.Message, f.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// userRow is the users table as exposed over REST.
type userRow struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	ProfilePicture    *string   `json:"profile_picture"`
	Bio               *string   `json:"bio"`
	Education         *string   `json:"education"`
	Location          *string   `json:"location"`
	Followers         int       `json:"followers"`
	Following         int       `json:"following"`
	ProfileVisibility string    `json:"profile_visibility"`
	JoinDate          time.Time `json:"join_date"`
	CreatedAt         time.Time `json:"created_at"`
}

func rowFromUser(u *models.User) userRow {
	return userRow{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		ProfilePicture:    u.ProfilePicture,
		Bio:               u.Bio,
		Education:         u.Education,
		Location:          u.Location,
		Followers:         u.Followers,
		Following:         u.Following,
		ProfileVisibility: string(u.ProfileVisibility),
		JoinDate:          u.JoinDate,
		CreatedAt:         u.CreatedAt,
	}
}

func (r userRow) user() *models.User {
	return &models.User{
		ID:                r.ID,
		Name:              r.Name,
		Email:             r.Email,
		ProfilePicture:    r.ProfilePicture,
		Bio:               r.Bio,
		Education:         r.Education,
		Location:          r.Location,
		Followers:         r.Followers,
		Following:         r.Following,
		ProfileVisibility: models.ProfileVisibility(r.ProfileVisibility),
		JoinDate:          r.JoinDate,
		CreatedAt:         r.CreatedAt,
	}
}

// SignIn exchanges email and password for a session.
func (g *Remote) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var result remoteSession
	resp, err := g.request(ctx, "").
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": normalizeEmail(email), "password": password}).
		SetResult(&result).
		Post("/auth/v1/token")
	if err := g.check(resp, err, "sign in"); err != nil {
		return nil, err
	}

	session := result.session()
	g.Emit(AuthEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

// SignUp registers the account and inserts its users row.
func (g *Remote) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	var result remoteSession
	resp, err := g.request(ctx, "").
		SetBody(map[string]interface{}{
			"email":    normalizeEmail(email),
			"password": password,
			"data":     map[string]string{"name": name},
		}).
		SetResult(&result).
		Post("/auth/v1/signup")
	if err := g.check(resp, err, "sign up"); err != nil {
		return nil, err
	}
	if result.AccessToken == "" {
		return nil, apperrors.ErrEmailNotConfirmed
	}

	now := time.Now()
	row := rowFromUser(&models.User{
		ID:                result.User.ID,
		Name:              strings.TrimSpace(name),
		Email:             result.User.Email,
		ProfileVisibility: models.VisibilityPublic,
		JoinDate:          now,
		CreatedAt:         now,
	})
	resp, err = g.request(ctx, result.AccessToken).
		SetHeader("Prefer", "return=minimal").
		SetBody(row).
		Post("/rest/v1/users")
	if err := g.check(resp, err, "insert profile"); err != nil {
		return nil, err
	}

	session := result.session()
	g.Emit(AuthEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

// SignOut revokes the session on the backend.
func (g *Remote) SignOut(ctx context.Context, accessToken string) error {
	session, err := g.GetSession(ctx, accessToken)
	if err != nil {
		return err
	}

	resp, err := g.request(ctx, accessToken).Post("/auth/v1/logout")
	if err := g.check(resp, err, "sign out"); err != nil {
		return err
	}

	g.Emit(AuthEvent{Type: EventSignedOut, Session: session})
	return nil
}

// GetSession resolves accessToken to its user.
func (g *Remote) GetSession(ctx context.Context, accessToken string) (*Session, error) {
	if accessToken == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	var user remoteUser
	resp, err := g.request(ctx, accessToken).SetResult(&user).Get("/auth/v1/user")
	if err := g.check(resp, err, "get session"); err != nil {
		return nil, err
	}

	return &Session{AccessToken: accessToken, TokenType: "bearer", User: user.identity()}, nil
}

// RequestPasswordReset asks the backend to mail a recovery link.
func (g *Remote) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := g.request(ctx, "").
		SetBody(map[string]string{"email": normalizeEmail(email)}).
		Post("/auth/v1/recover")
	return g.check(resp, err, "request password reset")
}

// ExchangeRecoveryToken verifies a recovery token and returns its session.
func (g *Remote) ExchangeRecoveryToken(ctx context.Context, token string) (*Session, error) {
	var result remoteSession
	resp, err := g.request(ctx, "").
		SetBody(map[string]string{"type": "recovery", "token_hash": token}).
		SetResult(&result).
		Post("/auth/v1/verify")
	if err := g.check(resp, err, "verify recovery token"); err != nil {
		return nil, err
	}

	session := result.session()
	g.Emit(AuthEvent{Type: EventPasswordRecovery, Session: session})
	return session, nil
}

// UpdatePassword sets a new password for the session's user.
func (g *Remote) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	var user remoteUser
	resp, err := g.request(ctx, accessToken).
		SetBody(map[string]string{"password": newPassword}).
		SetResult(&user).
		Put("/auth/v1/user")
	if err := g.check(resp, err, "update password"); err != nil {
		return err
	}

	g.Emit(AuthEvent{Type: EventUserUpdated, Session: &Session{AccessToken: accessToken, TokenType: "bearer", User: user.identity()}})
	return nil
}

// GetProfile reads one users row by id.
func (g *Remote) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	var rows []userRow
	resp, err := g.request(ctx, "").
		SetQueryParam("id", "eq."+userID).
		SetQueryParam("select", "*").
		SetResult(&rows).
		Get("/rest/v1/users")
	if err := g.check(resp, err, "get profile"); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return rows[0].user(), nil
}

// UpdateProfile writes the users row back.
func (g *Remote) UpdateProfile(ctx context.Context, user *models.User) error {
	resp, err := g.request(ctx, "").
		SetQueryParam("id", "eq."+user.ID).
		SetHeader("Prefer", "return=minimal").
		SetBody(rowFromUser(user)).
		Patch("/rest/v1/users")
	return g.check(resp, err, "update profile")
}

// request starts a call authorized as token, or as the anonymous key when
// token is empty.
func (g *Remote) request(ctx context.Context, token string) *resty.Request {
	if token == "" {
		token = g.anonKey
	}
	return g.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(&remoteFailure{})
}

func (g *Remote) check(resp *resty.Response, err error, action string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if !resp.IsError() {
		return nil
	}

	message := http.StatusText(resp.StatusCode())
	if failure, ok := resp.Error().(*remoteFailure); ok && failure.text() != "" {
		message = failure.text()
	}
	g.log.Debug().Str("action", action).Int("status", resp.StatusCode()).Str("message", message).Msg("Identity backend error")
	return remoteError(resp.StatusCode(), message)
}

// remoteError maps a backend message onto the matching sentinel so callers
// can classify it, keeping the backend's own wording.
func remoteError(status int, message string) error {
	lower := strings.ToLower(message)
	sentinel := apperrors.ErrBadRequest
	switch {
	case strings.Contains(lower, "invalid login credentials"):
		sentinel = apperrors.ErrInvalidCredentials
	case strings.Contains(lower, "email not confirmed"):
		sentinel = apperrors.ErrEmailNotConfirmed
	case strings.Contains(lower, "already registered"):
		sentinel = apperrors.ErrAlreadyRegistered
	case strings.Contains(lower, "password should be"):
		sentinel = apperrors.ErrWeakPassword
	case strings.Contains(lower, "rate limit"), status == http.StatusTooManyRequests:
		sentinel = apperrors.ErrRateLimited
	case strings.Contains(lower, "user not found"):
		sentinel = apperrors.ErrUserNotFound
	case strings.Contains(lower, "expired") && strings.Contains(lower, "token"):
		sentinel = apperrors.ErrTokenExpired
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = apperrors.ErrTokenInvalid
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("identity backend: %s", message)
	}
	return apperrors.NewCustomError(sentinel, message)
}
