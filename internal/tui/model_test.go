package tui

import (
	"context"
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studyhub/internal/app/gateway"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/client"
	"github.com/yigit/studyhub/internal/pkg/notification"
	"github.com/yigit/studyhub/internal/pkg/viewrouter"
)

type fakeAPI struct {
	signInErr     error
	profileLoaded bool
	deleted       []string
	toast         *notification.Notification
	signedOut     bool
}

func (f *fakeAPI) session() *dto.SessionResponse {
	return &dto.SessionResponse{
		Session:       &gateway.Session{AccessToken: "tok", User: gateway.Identity{ID: "u1", Name: "Ada"}},
		Profile:       &models.User{ID: "u1", Name: "Ada"},
		ProfileLoaded: f.profileLoaded,
	}
}

func (f *fakeAPI) SignIn(context.Context, string, string) (*dto.SessionResponse, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session(), nil
}

func (f *fakeAPI) SignUp(ctx context.Context, email, password, _ string) (*dto.SessionResponse, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeAPI) SignOut(context.Context) error {
	f.signedOut = true
	return nil
}

func (f *fakeAPI) Session(context.Context) (*dto.SessionResponse, error) {
	return f.session(), nil
}

func (f *fakeAPI) Toast(context.Context) (*notification.Notification, error) {
	return f.toast, nil
}

func (f *fakeAPI) Delete(_ context.Context, path, id string) (dto.DeleteResponse, error) {
	f.deleted = append(f.deleted, path+"/"+id)
	return dto.DeleteResponse{ID: id, Removed: true}, nil
}

func testFeatures(rows map[string][]row, errs map[string]error) map[string]feature {
	features := map[string]feature{}
	for _, view := range viewrouter.FeatureViews {
		view := view
		features[view] = feature{
			title:      view,
			deletePath: "/" + view,
			load: func(context.Context, string) ([]row, error) {
				return rows[view], errs[view]
			},
		}
	}
	return features
}

func newTestModel(api *fakeAPI, rows map[string][]row, errs map[string]error) Model {
	return NewModel(context.Background(), api, testFeatures(rows, errs), zerolog.Nop())
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// signIn drives the model from the anonymous home screen through the form.
func signIn(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = press(t, m, enter)
	require.Equal(t, viewrouter.ScreenAuth, m.screen())

	m.form.inputs[fieldEmail].SetValue("ada@uni.edu")
	m.form.inputs[fieldPassword].SetValue("secret1")
	m, cmd := press(t, m, enter)
	require.NotNil(t, cmd)
	assert.True(t, m.form.submitting)

	m, _ = send(t, m, cmd())
	return m
}

func TestModel_AnonymousHomeLeadsToAuth(t *testing.T) {
	m := newTestModel(&fakeAPI{}, nil, nil)
	assert.Equal(t, viewrouter.ScreenHome, m.screen())

	m, _ = press(t, m, enter)
	assert.Equal(t, viewrouter.ScreenAuth, m.screen())

	m, _ = press(t, m, enter)
	assert.Equal(t, "Please fill in every field", m.form.errMsg)

	m, _ = press(t, m, esc)
	assert.Equal(t, viewrouter.ScreenHome, m.screen())
}

func TestModel_SignInWaitsForProfile(t *testing.T) {
	api := &fakeAPI{}
	m := signIn(t, newTestModel(api, nil, nil))

	assert.True(t, m.authenticated)
	assert.False(t, m.profileLoaded)
	assert.Equal(t, viewrouter.ScreenHome, m.screen(), "home renders while the profile loads")

	m, _ = press(t, m, down)
	m, _ = press(t, m, enter)
	assert.Equal(t, "notes", m.nav.Current())
	assert.Equal(t, viewrouter.ScreenLoading, m.screen())

	api.profileLoaded = true
	m, cmd := send(t, m, profilePollMsg{})
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.Equal(t, "notes", m.screen())
}

func TestModel_SignInFailureKeepsForm(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		fields  map[string]string
	}{
		{
			name:    "api error",
			err:     &client.APIError{Status: http.StatusUnauthorized, Code: "AUTH_001", Message: "Invalid login credentials", Fields: map[string]string{"password": "Invalid login credentials"}},
			message: "Invalid login credentials",
			fields:  map[string]string{"password": "Invalid login credentials"},
		},
		{
			name:    "transport error",
			err:     errors.New("dial tcp: connection refused"),
			message: genericAuthError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := signIn(t, newTestModel(&fakeAPI{signInErr: tt.err}, nil, nil))

			assert.False(t, m.authenticated)
			assert.Equal(t, viewrouter.ScreenAuth, m.screen())
			assert.False(t, m.form.submitting)
			assert.Equal(t, tt.message, m.form.errMsg)
			assert.Equal(t, tt.fields, m.form.fieldErrs)
			assert.Equal(t, "ada@uni.edu", m.form.inputs[fieldEmail].Value())
			assert.Empty(t, m.form.inputs[fieldPassword].Value())
		})
	}
}

func TestModel_FeatureNavigationAndDelete(t *testing.T) {
	api := &fakeAPI{profileLoaded: true}
	rows := map[string][]row{"notes": {{ID: "n1", Title: "Calc Notes"}, {ID: "n2", Title: "Physics"}}}
	m := signIn(t, newTestModel(api, rows, nil))

	m, _ = press(t, m, down)
	m, cmd := press(t, m, enter)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	m, _ = send(t, m, cmd())
	assert.False(t, m.loading)
	require.Len(t, m.rows, 2)
	assert.Contains(t, m.View(), "Calc Notes")

	m, _ = press(t, m, down)
	m, cmd = press(t, m, runes("d"))
	require.NotNil(t, cmd)
	_, _ = send(t, m, cmd())
	assert.Equal(t, []string{"/notes/n2"}, api.deleted)

	m, _ = press(t, m, esc)
	assert.Equal(t, viewrouter.ViewHome, m.nav.Current())
	assert.Equal(t, viewrouter.ScreenHome, m.screen())
}

func TestModel_StaleRowsAreIgnored(t *testing.T) {
	m := signIn(t, newTestModel(&fakeAPI{profileLoaded: true}, nil, nil))
	next, _ := m.open("notes")
	mm := next.(Model)

	mm, _ = send(t, mm, rowsMsg{view: "flashcards", rows: []row{{ID: "f1"}}})

	assert.Empty(t, mm.rows)
	assert.True(t, mm.loading)
}

func TestModel_UnauthorizedEndsSession(t *testing.T) {
	m := signIn(t, newTestModel(&fakeAPI{profileLoaded: true}, nil, nil))
	next, _ := m.open("notes")
	m = next.(Model)

	m, _ = send(t, m, rowsMsg{view: "notes", err: &client.APIError{Status: http.StatusUnauthorized}})

	assert.False(t, m.authenticated)
	assert.Equal(t, viewrouter.ViewHome, m.nav.Current())
	assert.Contains(t, m.errMsg, "session has ended")
}

func TestModel_ToastAndSignOut(t *testing.T) {
	toast := &notification.Notification{ID: "t1", Kind: notification.KindSuccess, Title: "Note Uploaded"}
	api := &fakeAPI{profileLoaded: true, toast: toast}
	m := signIn(t, newTestModel(api, nil, nil))

	m, _ = send(t, m, toastMsg{toast: toast})
	assert.Contains(t, m.View(), "Note Uploaded")

	_, cmd := send(t, m, toastTickMsg{gen: m.toastGen - 1})
	assert.Nil(t, cmd, "ticks from an earlier session stop")

	m, cmd = press(t, m, runes("x"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.True(t, api.signedOut)
	assert.False(t, m.authenticated)
	assert.Nil(t, m.toast)
}
