package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/client"
	"github.com/yigit/studyhub/internal/pkg/navigation"
	"github.com/yigit/studyhub/internal/pkg/notification"
	"github.com/yigit/studyhub/internal/pkg/viewrouter"
)

const genericAuthError = "Something went wrong. Please try again later."

// API is the part of the StudyHub client the model drives directly.
type API interface {
	SignIn(ctx context.Context, email, password string) (*dto.SessionResponse, error)
	SignUp(ctx context.Context, email, password, name string) (*dto.SessionResponse, error)
	SignOut(ctx context.Context) error
	Session(ctx context.Context) (*dto.SessionResponse, error)
	Toast(ctx context.Context) (*notification.Notification, error)
	Delete(ctx context.Context, path, id string) (dto.DeleteResponse, error)
}

// Model is the root bubbletea model. It owns a local navigation stack and
// picks the screen to render through the view router.
type Model struct {
	ctx      context.Context
	api      API
	features map[string]feature
	views    *viewrouter.Router[string]
	nav      *navigation.Stack
	log      zerolog.Logger

	authenticated bool
	profileLoaded bool
	profile       *models.User

	form    authForm
	spinner spinner.Model
	menuIdx int

	rows      []row
	idx       int
	loading   bool
	search    textinput.Model
	searching bool

	toast    *notification.Notification
	toastGen int
	status   string
	errMsg   string
}

// NewModel creates the root model on the anonymous home screen.
func NewModel(ctx context.Context, api API, features map[string]feature, log zerolog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	search := textinput.New()
	search.Placeholder = "search"
	search.Width = 30

	views := viewrouter.New(viewrouter.ScreenAuth, viewrouter.ScreenLoading, viewrouter.ScreenHome)
	for view := range features {
		views.Register(view, view)
	}

	return Model{
		ctx:      ctx,
		api:      api,
		features: features,
		views:    views,
		nav:      navigation.New(viewrouter.ViewHome),
		log:      log,
		form:     newAuthForm(),
		spinner:  s,
		search:   search,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// screen resolves what to render for the current state.
func (m Model) screen() string {
	return m.views.Resolve(viewrouter.State{
		Authenticated: m.authenticated,
		ProfileLoaded: m.profileLoaded,
		View:          m.nav.Current(),
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	case spinner.TickMsg:
		if m.screen() != viewrouter.ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sessionMsg:
		return m.handleSession(msg)
	case profilePollMsg:
		if m.authenticated && !m.profileLoaded {
			return m, m.cmdSession()
		}
		return m, nil
	case signedOutMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("Sign out failed")
		}
		m.reset("")
		return m, nil
	case rowsMsg:
		if msg.view != m.nav.Current() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.rows = msg.rows
		m.clampIndex()
		return m, nil
	case deletedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.status = ""
		if !msg.resp.Removed {
			m.status = "Already removed"
		}
		return m, tea.Batch(m.cmdLoad(), m.cmdToast())
	case toastMsg:
		if msg.err != nil {
			if errors.Is(msg.err, client.ErrUnauthorized) {
				return m.fail(msg.err)
			}
			return m, nil
		}
		m.toast = msg.toast
		return m, nil
	case toastTickMsg:
		if !m.authenticated || msg.gen != m.toastGen {
			return m, nil
		}
		return m, tea.Batch(m.cmdToast(), tickToast(m.toastGen))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	switch screen := m.screen(); screen {
	case viewrouter.ScreenAuth:
		return m.updateAuth(msg)
	case viewrouter.ScreenLoading:
		if key.Matches(msg, keys.signOut) {
			return m, m.cmdSignOut()
		}
		return m, nil
	case viewrouter.ScreenHome:
		return m.updateHome(msg)
	default:
		return m.updateFeature(msg)
	}
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.goBack()
		return m, nil
	case key.Matches(msg, keys.signUp):
		m.form.toggleMode()
		return m, nil
	case key.Matches(msg, keys.tab):
		m.form.focusNext()
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.form.focusPrev()
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.form.submitting {
			return m, nil
		}
		email, password, name := m.form.values()
		if email == "" || password == "" || (m.form.signUp && name == "") {
			m.form.errMsg = "Please fill in every field"
			return m, nil
		}
		m.form.submitting = true
		m.form.errMsg = ""
		return m, m.cmdAuthenticate(email, password, name, m.form.signUp)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.authenticated {
		if key.Matches(msg, keys.enter) {
			m.nav.Push(viewrouter.ViewLogin)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case key.Matches(msg, keys.down):
		if m.menuIdx < len(viewrouter.FeatureViews)-1 {
			m.menuIdx++
		}
	case key.Matches(msg, keys.enter):
		return m.open(viewrouter.FeatureViews[m.menuIdx])
	case key.Matches(msg, keys.signOut):
		return m, m.cmdSignOut()
	}
	return m, nil
}

func (m Model) updateFeature(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.rows)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.back):
		m.goBack()
		if _, ok := m.features[m.nav.Current()]; ok {
			m.loading = true
			return m, m.cmdLoad()
		}
	case key.Matches(msg, keys.reload):
		m.loading = true
		return m, m.cmdLoad()
	case key.Matches(msg, keys.search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.delete):
		f := m.features[m.nav.Current()]
		if f.deletePath == "" || len(m.rows) == 0 {
			return m, nil
		}
		return m, m.cmdDelete(f.deletePath, m.rows[m.idx].ID)
	case key.Matches(msg, keys.signOut):
		return m, m.cmdSignOut()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.loading = true
		return m, m.cmdLoad()
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.loading = true
		return m, m.cmdLoad()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.fromForm {
			message, fields := authFailure(msg.err)
			m.form.failed(message, fields)
			m.log.Info().Err(msg.err).Msg("Authentication failed")
			return m, nil
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return m.fail(msg.err)
		}
		m.errMsg = msg.err.Error()
		return m, pollProfile()
	}

	m.authenticated = true
	m.profileLoaded = msg.resp.ProfileLoaded
	if msg.resp.Profile != nil {
		m.profile = msg.resp.Profile
	}

	var cmds []tea.Cmd
	if msg.fromForm {
		m.form = newAuthForm()
		m.nav.Reset(viewrouter.ViewHome)
		m.menuIdx = 0
		m.errMsg = ""
		m.toastGen++
		cmds = append(cmds, m.cmdToast(), tickToast(m.toastGen))
		if msg.resp.Session != nil {
			m.log.Info().Str("user_id", msg.resp.Session.User.ID).Msg("Signed in")
		}
	}
	if !m.profileLoaded {
		cmds = append(cmds, m.spinner.Tick, pollProfile())
	}
	return m, tea.Batch(cmds...)
}

// open pushes view and starts loading its rows.
func (m Model) open(view string) (tea.Model, tea.Cmd) {
	m.nav.Push(view)
	m.rows = nil
	m.idx = 0
	m.status = ""
	m.errMsg = ""
	m.search.SetValue("")
	m.loading = true
	m.log.Debug().Str("view", view).Msg("Navigate")
	return m, m.cmdLoad()
}

func (m *Model) goBack() {
	if !m.nav.Back() {
		m.nav.Reset(viewrouter.ViewHome)
	}
	m.rows = nil
	m.idx = 0
	m.status = ""
	m.search.SetValue("")
}

// reset drops every piece of signed-in state.
func (m *Model) reset(errMsg string) {
	m.authenticated = false
	m.profileLoaded = false
	m.profile = nil
	m.toast = nil
	m.toastGen++
	m.rows = nil
	m.idx = 0
	m.menuIdx = 0
	m.status = ""
	m.errMsg = errMsg
	m.nav.Reset(viewrouter.ViewHome)
}

// fail reports err; an unauthorized response ends the session.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, client.ErrUnauthorized) {
		m.log.Warn().Err(err).Msg("Session rejected")
		m.reset("Your session has ended. Please sign in again.")
		return m, nil
	}
	m.log.Error().Err(err).Msg("Request failed")
	m.errMsg = err.Error()
	return m, nil
}

func (m *Model) clampIndex() {
	if m.idx >= len(m.rows) {
		m.idx = len(m.rows) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func authFailure(err error) (string, map[string]string) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, apiErr.Fields
	}
	return genericAuthError, nil
}

func (m Model) cmdAuthenticate(email, password, name string, signUp bool) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		var resp *dto.SessionResponse
		var err error
		if signUp {
			resp, err = api.SignUp(ctx, email, password, name)
		} else {
			resp, err = api.SignIn(ctx, email, password)
		}
		return sessionMsg{resp: resp, err: err, fromForm: true}
	}
}

func (m Model) cmdSession() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		resp, err := api.Session(ctx)
		return sessionMsg{resp: resp, err: err}
	}
}

func (m Model) cmdSignOut() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		return signedOutMsg{err: api.SignOut(ctx)}
	}
}

func (m Model) cmdLoad() tea.Cmd {
	view := m.nav.Current()
	f, ok := m.features[view]
	if !ok {
		return nil
	}
	ctx, search := m.ctx, m.search.Value()
	return func() tea.Msg {
		rows, err := f.load(ctx, search)
		return rowsMsg{view: view, rows: rows, err: err}
	}
}

func (m Model) cmdDelete(path, id string) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		resp, err := api.Delete(ctx, path, id)
		return deletedMsg{resp: resp, err: err}
	}
}

func (m Model) cmdToast() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		toast, err := api.Toast(ctx)
		return toastMsg{toast: toast, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	if m.toast != nil {
		b.WriteString(renderToast(m.toast) + "\n\n")
	}

	switch screen := m.screen(); screen {
	case viewrouter.ScreenAuth:
		b.WriteString(m.form.View())
	case viewrouter.ScreenLoading:
		b.WriteString(m.spinner.View() + " Loading your profile...\n\n")
		b.WriteString(helpStyle.Render("x sign out  ctrl+c quit"))
	case viewrouter.ScreenHome:
		b.WriteString(m.viewHome())
	default:
		b.WriteString(m.viewFeature(screen))
	}

	if m.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.errMsg))
	}
	return appStyle.Render(b.String())
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("StudyHub") + "\n\n")

	if !m.authenticated {
		b.WriteString("Notes, flashcards, communities and study sessions in one place.\n\n")
		b.WriteString(helpStyle.Render("enter sign in  ctrl+c quit"))
		return b.String()
	}

	if m.profile != nil {
		b.WriteString(fmt.Sprintf("Welcome back, %s\n\n", m.profile.Name))
	}
	for i, view := range viewrouter.FeatureViews {
		line := "  " + m.features[view].title
		if i == m.menuIdx {
			line = selectedStyle.Render("> " + m.features[view].title)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ move  enter open  x sign out  ctrl+c quit"))
	return b.String()
}

func (m Model) viewFeature(view string) string {
	f := m.features[view]

	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title) + "  " + helpStyle.Render(strings.Join(m.nav.History(), " › ")) + "\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString("Search: [" + m.search.View() + "]\n\n")
	}

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.rows) == 0:
		b.WriteString("Nothing here yet\n")
	default:
		for i, r := range m.rows {
			line := "  " + r.Title
			if r.Detail != "" {
				line += helpStyle.Render("  " + r.Detail)
			}
			if i == m.idx {
				line = selectedStyle.Render("> "+r.Title) + helpStyle.Render("  "+r.Detail)
			}
			b.WriteString(line + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	help := "↑/↓ move  / search  r reload  esc back  x sign out"
	if f.deletePath != "" {
		help = "↑/↓ move  / search  d delete  r reload  esc back  x sign out"
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}
