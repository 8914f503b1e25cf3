package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/repositories"
	"github.com/yigit/studyhub/internal/db"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/auth"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User, passwordHash string) error {
	return m.Called(ctx, user, passwordHash).Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) GetCredentials(ctx context.Context, email string) (*repositories.Credentials, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.Credentials), args.Error(1)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, toEmail, toName, token string) error {
	return m.Called(ctx, toEmail, toName, token).Error(0)
}

type recordedEvents struct {
	events []AuthEvent
}

func (r *recordedEvents) listen(e AuthEvent) { r.events = append(r.events, e) }

func (r *recordedEvents) types() []EventType {
	out := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

var ada = &models.User{ID: "user-ada", Name: "Ada", Email: "ada@uni.edu", ProfileVisibility: models.VisibilityPublic}

func newTestLocal(t *testing.T, attempts int) (*Local, *mockUserStore, *mockMailer, *recordedEvents) {
	t.Helper()
	users := &mockUserStore{}
	mailer := &mockMailer{}
	events := &recordedEvents{}
	g := NewLocal(LocalConfig{
		Users:          users,
		Store:          db.NewMemory(),
		Tokens:         auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"}),
		Mailer:         mailer,
		Logger:         zerolog.Nop(),
		SignInAttempts: attempts,
	})
	g.OnAuthStateChange(events.listen)
	return g, users, mailer, events
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestLocal_SignUpOpensSession(t *testing.T) {
	g, users, _, events := newTestLocal(t, 0)
	ctx := context.Background()
	users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ada@uni.edu" && u.Name == "Ada" && u.ID != "" && !u.JoinDate.IsZero()
	}), mock.AnythingOfType("string")).Return(nil)

	session, err := g.SignUp(ctx, " Ada@Uni.edu ", "secret1", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.edu", session.User.Email)

	current, err := g.GetSession(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, current.User.ID)
	assert.Equal(t, []EventType{EventSignedIn}, events.types())
	users.AssertExpectations(t)
}

func TestLocal_SignUpRejectsWeakPassword(t *testing.T) {
	g, users, _, _ := newTestLocal(t, 0)

	_, err := g.SignUp(context.Background(), "ada@uni.edu", "123", "Ada")

	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestLocal_SignUpDuplicateEmail(t *testing.T) {
	g, users, _, events := newTestLocal(t, 0)
	users.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrAlreadyRegistered)

	_, err := g.SignUp(context.Background(), "ada@uni.edu", "secret1", "Ada")

	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	assert.Empty(t, events.events)
}

func TestLocal_SignIn(t *testing.T) {
	g, users, _, events := newTestLocal(t, 0)
	ctx := context.Background()
	users.On("GetCredentials", ctx, "ada@uni.edu").
		Return(&repositories.Credentials{UserID: ada.ID, Email: ada.Email, PasswordHash: hashed(t, "secret1")}, nil)
	users.On("GetCredentials", ctx, "ghost@uni.edu").Return(nil, apperrors.ErrUserNotFound)
	users.On("GetByID", ctx, ada.ID).Return(ada, nil)

	_, err := g.SignIn(ctx, "ada@uni.edu", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = g.SignIn(ctx, "ghost@uni.edu", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	session, err := g.SignIn(ctx, "ada@uni.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: ada.ID, Email: ada.Email, Name: ada.Name}, session.User)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, []EventType{EventSignedIn}, events.types())
	assert.Equal(t, ada.ID, events.events[0].UserID())
}

func TestLocal_SignInRateLimited(t *testing.T) {
	g, users, _, _ := newTestLocal(t, 2)
	users.On("GetCredentials", mock.Anything, "ghost@uni.edu").Return(nil, apperrors.ErrUserNotFound)

	for i := 0; i < 2; i++ {
		_, err := g.SignIn(context.Background(), "ghost@uni.edu", "secret1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	_, err := g.SignIn(context.Background(), "ghost@uni.edu", "secret1")

	assert.ErrorIs(t, err, apperrors.ErrRateLimited)
	users.AssertNumberOfCalls(t, "GetCredentials", 2)
}

func TestLocal_SignOutRevokesSession(t *testing.T) {
	g, users, _, events := newTestLocal(t, 0)
	ctx := context.Background()
	users.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
	session, err := g.SignUp(ctx, "ada@uni.edu", "secret1", "Ada")
	require.NoError(t, err)

	require.NoError(t, g.SignOut(ctx, session.AccessToken))

	_, err = g.GetSession(ctx, session.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.ErrorIs(t, g.SignOut(ctx, session.AccessToken), apperrors.ErrSessionNotFound)
	assert.Equal(t, []EventType{EventSignedIn, EventSignedOut}, events.types())
}

func TestLocal_GetSessionRejectsGarbage(t *testing.T) {
	g, _, _, _ := newTestLocal(t, 0)

	_, err := g.GetSession(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestLocal_PasswordRecovery(t *testing.T) {
	g, users, mailer, events := newTestLocal(t, 0)
	ctx := context.Background()
	users.On("GetByEmail", ctx, "ada@uni.edu").Return(ada, nil)
	users.On("GetByID", ctx, ada.ID).Return(ada, nil)
	users.On("UpdatePassword", ctx, ada.ID, mock.AnythingOfType("string")).Return(nil)

	var token string
	mailer.On("SendPasswordReset", ctx, ada.Email, ada.Name, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { token = args.String(3) }).
		Return(nil)

	require.NoError(t, g.RequestPasswordReset(ctx, "ADA@uni.edu"))
	require.NotEmpty(t, token)

	session, err := g.ExchangeRecoveryToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, session.User.ID)

	_, err = g.ExchangeRecoveryToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRecovery)

	assert.ErrorIs(t, g.UpdatePassword(ctx, session.AccessToken, "123"), apperrors.ErrWeakPassword)
	require.NoError(t, g.UpdatePassword(ctx, session.AccessToken, "new-secret"))

	assert.Equal(t, []EventType{EventPasswordRecovery, EventUserUpdated}, events.types())
	mailer.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestLocal_PasswordResetUnknownEmailIsSilent(t *testing.T) {
	g, users, mailer, _ := newTestLocal(t, 0)
	users.On("GetByEmail", mock.Anything, "ghost@uni.edu").Return(nil, apperrors.ErrUserNotFound)

	require.NoError(t, g.RequestPasswordReset(context.Background(), "ghost@uni.edu"))

	mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLocal_ProfileDelegatesToStore(t *testing.T) {
	g, users, _, _ := newTestLocal(t, 0)
	ctx := context.Background()
	users.On("GetByID", ctx, ada.ID).Return(ada, nil)
	users.On("Update", ctx, ada).Return(nil)

	profile, err := g.GetProfile(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada, profile)
	require.NoError(t, g.UpdateProfile(ctx, ada))
	users.AssertExpectations(t)
}
