package workspace

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
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
)

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func sampleSeeder(owner models.User) SeedData {
	return SeedData{
		Notes:       []models.Note{{ID: "sample-note", Title: "Welcome", UserID: owner.ID, UserName: owner.Name}},
		Communities: []models.Community{{ID: "sample-community", Name: "Study Hall", MemberCount: 10}},
		Joined:      []string{"sample-community"},
	}
}

func newTestRegistry(profiles ProfileSource) *Registry {
	return NewRegistry(profiles, sampleSeeder, Options{IDs: &sequenceIDs{}}, zerolog.Nop())
}

func TestRegistry_OpenHydratesAndSeeds(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("GetProfile", mock.Anything, "user-1").
		Return(&models.User{ID: "user-1", Name: "Ada"}, nil).Once()
	r := newTestRegistry(profiles)

	w := r.Open(context.Background(), "user-1")

	require.True(t, w.ProfileLoaded())
	notes := w.Notes(collection.Query[models.Note]{})
	require.Len(t, notes, 1)
	assert.Equal(t, "Ada", notes[0].UserName)
	community, err := w.Community("sample-community")
	require.NoError(t, err)
	assert.True(t, community.IsMember)
	assert.Empty(t, w.Notifications(), "seeding is silent")

	assert.Same(t, w, r.Open(context.Background(), "user-1"))
	profiles.AssertExpectations(t)
}

func TestRegistry_OpenRetriesFailedHydration(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("GetProfile", mock.Anything, "user-1").Return(nil, errors.New("connection refused")).Once()
	profiles.On("GetProfile", mock.Anything, "user-1").Return(&models.User{ID: "user-1", Name: "Ada"}, nil).Once()
	r := newTestRegistry(profiles)

	w := r.Open(context.Background(), "user-1")
	assert.False(t, w.ProfileLoaded())

	again := r.Open(context.Background(), "user-1")
	assert.Same(t, w, again)
	assert.True(t, again.ProfileLoaded())
	profiles.AssertExpectations(t)
}

func TestRegistry_HandleAuthEvent(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("GetProfile", mock.Anything, "user-1").Return(&models.User{ID: "user-1", Name: "Ada"}, nil)
	r := newTestRegistry(profiles)
	session := &gateway.Session{User: gateway.Identity{ID: "user-1"}}

	r.HandleAuthEvent(gateway.AuthEvent{Type: gateway.EventSignedIn, Session: session})
	w, err := r.Get("user-1")
	require.NoError(t, err)
	assert.True(t, w.ProfileLoaded())

	r.HandleAuthEvent(gateway.AuthEvent{Type: gateway.EventUserUpdated, Session: session})
	r.HandleAuthEvent(gateway.AuthEvent{Type: gateway.EventPasswordRecovery, Session: session})
	assert.Equal(t, 1, r.Len())

	r.HandleAuthEvent(gateway.AuthEvent{Type: gateway.EventSignedOut, Session: session})
	_, err = r.Get("user-1")
	assert.ErrorIs(t, err, apperrors.ErrWorkspaceNotFound)

	r.HandleAuthEvent(gateway.AuthEvent{Type: gateway.EventSignedOut})
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_WorkspacesShareMemberships(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("GetProfile", mock.Anything, mock.Anything).Return(&models.User{Name: "someone"}, nil)
	r := newTestRegistry(profiles)

	a := r.Open(context.Background(), "user-a")
	b := r.Open(context.Background(), "user-b")

	_, err := a.LeaveCommunity("sample-community")
	require.NoError(t, err)

	assert.Equal(t, []string{"user-b"}, r.Memberships().Members("sample-community"))
	cb, err := b.Community("sample-community")
	require.NoError(t, err)
	assert.True(t, cb.IsMember)

	profile, _ := a.Profile()
	assert.Equal(t, "user-a", profile.ID, "profile id is pinned to the owner")
}
