// Package viewrouter decides which top-level screen to render for a given
// auth state and requested view.
package viewrouter

// View tags with special meaning to the router.
const (
	ViewHome  = "home"
	ViewLogin = "login"
)

// Feature views registered by default.
var FeatureViews = []string{
	"dashboard",
	"notes",
	"flashcards",
	"communities",
	"sessions",
	"infovids",
	"store",
	"chat",
	"profile",
	"activities",
	"notifications",
	"settings",
}

// State is the router input.
type State struct {
	Authenticated bool
	ProfileLoaded bool
	View          string
}

// Router maps a State to a screen of type S.
type Router[S any] struct {
	auth    S
	loading S
	home    S
	screens map[string]S
}

// New creates a router with the fixed auth, loading and home screens.
func New[S any](auth, loading, home S) *Router[S] {
	return &Router[S]{
		auth:    auth,
		loading: loading,
		home:    home,
		screens: map[string]S{ViewHome: home},
	}
}

// Register binds a view tag to a screen.
func (r *Router[S]) Register(view string, screen S) *Router[S] {
	r.screens[view] = screen
	return r
}

// Registered reports whether a screen is bound to view.
func (r *Router[S]) Registered(view string) bool {
	_, ok := r.screens[view]
	return ok
}

// Resolve applies the routing rules in order:
//  1. the login tag, or an anonymous user on anything but home, gets auth;
//  2. a signed-in user whose profile has not loaded gets loading, except on home;
//  3. otherwise the registered screen, with unknown tags falling back to home.
func (r *Router[S]) Resolve(state State) S {
	if state.View == ViewLogin || (!state.Authenticated && state.View != ViewHome) {
		return r.auth
	}
	if state.Authenticated && !state.ProfileLoaded && state.View != ViewHome {
		return r.loading
	}
	if screen, ok := r.screens[state.View]; ok {
		return screen
	}
	return r.home
}

// Screen names used by the HTTP view endpoint.
const (
	ScreenAuth    = "auth"
	ScreenLoading = "loading"
	ScreenHome    = "home"
)

// NewNamed creates a router whose screens are named after their view tags,
// with every feature view registered.
func NewNamed() *Router[string] {
	r := New(ScreenAuth, ScreenLoading, ScreenHome)
	for _, view := range FeatureViews {
		r.Register(view, view)
	}
	return r
}
