package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/app/gateway"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

const defaultHydrateTimeout = 5 * time.Second

// ProfileSource fetches profile rows from the identity backend.
type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

// Registry owns one Workspace per signed-in user.
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace

	profiles ProfileSource
	seeder   Seeder
	base     Options
	log      zerolog.Logger
	timeout  time.Duration
}

// NewRegistry creates a registry. Every workspace it opens shares base,
// including one process-wide membership set.
func NewRegistry(profiles ProfileSource, seeder Seeder, base Options, log zerolog.Logger) *Registry {
	base.Logger = &log
	base.withDefaults()
	return &Registry{
		workspaces: make(map[string]*Workspace),
		profiles:   profiles,
		seeder:     seeder,
		base:       base,
		log:        log,
		timeout:    defaultHydrateTimeout,
	}
}

// Memberships returns the shared community membership set.
func (r *Registry) Memberships() *Memberships {
	return r.base.Memberships
}

// Open returns the user's workspace, creating, hydrating and seeding it first
// if needed. An open workspace whose profile is not loaded yet gets another
// hydration attempt, the way a page reload would retry it.
func (r *Registry) Open(ctx context.Context, userID string) *Workspace {
	if w, err := r.Get(userID); err == nil {
		if !w.ProfileLoaded() {
			_ = r.hydrate(ctx, w)
		}
		return w
	}

	w := New(userID, r.base)
	hydrated := r.hydrate(ctx, w) == nil
	if r.seeder != nil {
		profile, _ := w.Profile()
		w.Load(r.seeder(profile))
	}

	r.mu.Lock()
	if existing, ok := r.workspaces[userID]; ok {
		r.mu.Unlock()
		return existing
	}
	r.workspaces[userID] = w
	r.mu.Unlock()

	r.log.Info().Str("user_id", userID).Bool("profile_loaded", hydrated).Msg("Workspace opened")
	return w
}

// Get returns an open workspace.
func (r *Registry) Get(userID string) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workspaces[userID]
	if !ok {
		return nil, apperrors.ErrWorkspaceNotFound
	}
	return w, nil
}

// Close drops the user's workspace and everything in it.
func (r *Registry) Close(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workspaces[userID]; !ok {
		return false
	}
	delete(r.workspaces, userID)
	r.log.Info().Str("user_id", userID).Msg("Workspace closed")
	return true
}

// Len returns the number of open workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Refresh reloads the profile of an open workspace.
func (r *Registry) Refresh(ctx context.Context, userID string) error {
	w, err := r.Get(userID)
	if err != nil {
		return err
	}
	return r.hydrate(ctx, w)
}

// HandleAuthEvent keeps workspaces in step with the identity backend. It is
// meant to be passed to Gateway.OnAuthStateChange.
func (r *Registry) HandleAuthEvent(event gateway.AuthEvent) {
	userID := event.UserID()
	if userID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	switch event.Type {
	case gateway.EventSignedIn:
		r.Open(ctx, userID)
	case gateway.EventSignedOut:
		r.Close(userID)
	case gateway.EventUserUpdated:
		if err := r.Refresh(ctx, userID); err != nil && !errors.Is(err, apperrors.ErrWorkspaceNotFound) {
			r.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to refresh profile")
		}
	case gateway.EventPasswordRecovery:
		r.log.Info().Str("user_id", userID).Msg("Password recovery session started")
	}
}

func (r *Registry) hydrate(ctx context.Context, w *Workspace) error {
	if r.profiles == nil {
		profile, _ := w.Profile()
		w.SetProfile(profile)
		return nil
	}
	profile, err := r.profiles.GetProfile(ctx, w.OwnerID())
	if err != nil {
		r.log.Warn().Err(err).Str("user_id", w.OwnerID()).Msg("Failed to load profile")
		return err
	}
	w.SetProfile(*profile)
	return nil
}
