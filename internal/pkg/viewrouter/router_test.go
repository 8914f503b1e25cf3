package viewrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_Resolve(t *testing.T) {
	r := NewNamed()

	tests := []struct {
		name  string
		state State
		want  string
	}{
		{
			name:  "anonymous user never sees a feature screen",
			state: State{Authenticated: false, ProfileLoaded: true, View: "dashboard"},
			want:  ScreenAuth,
		},
		{
			name:  "anonymous user may see home",
			state: State{View: "home"},
			want:  ScreenHome,
		},
		{
			name:  "login tag always renders auth",
			state: State{Authenticated: true, ProfileLoaded: true, View: "login"},
			want:  ScreenAuth,
		},
		{
			name:  "profile still loading",
			state: State{Authenticated: true, ProfileLoaded: false, View: "profile"},
			want:  ScreenLoading,
		},
		{
			name:  "home while profile loading",
			state: State{Authenticated: true, ProfileLoaded: false, View: "home"},
			want:  ScreenHome,
		},
		{
			name:  "registered feature",
			state: State{Authenticated: true, ProfileLoaded: true, View: "notes"},
			want:  "notes",
		},
		{
			name:  "unknown tag falls back to home",
			state: State{Authenticated: true, ProfileLoaded: true, View: "nowhere"},
			want:  ScreenHome,
		},
		{
			name:  "unknown tag while loading still shows loading",
			state: State{Authenticated: true, ProfileLoaded: false, View: "nowhere"},
			want:  ScreenLoading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.state))
		})
	}
}

func TestRouter_GenericScreens(t *testing.T) {
	type screen int
	const (
		auth screen = iota
		loading
		home
		notes
	)
	r := New(auth, loading, home).Register("notes", notes)

	assert.Equal(t, notes, r.Resolve(State{Authenticated: true, ProfileLoaded: true, View: "notes"}))
	assert.True(t, r.Registered("notes"))
	assert.True(t, r.Registered("home"))
	assert.False(t, r.Registered("store"))
}
