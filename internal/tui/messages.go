package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

const (
	profilePollInterval = time.Second
	toastPollInterval   = 2 * time.Second
)

// sessionMsg carries the result of a sign-in, sign-up or session poll.
type sessionMsg struct {
	resp     *dto.SessionResponse
	err      error
	fromForm bool
}

type signedOutMsg struct {
	err error
}

type rowsMsg struct {
	view string
	rows []row
	err  error
}

type deletedMsg struct {
	resp dto.DeleteResponse
	err  error
}

type toastMsg struct {
	toast *notification.Notification
	err   error
}

type profilePollMsg struct{}

type toastTickMsg struct {
	gen int
}

func pollProfile() tea.Cmd {
	return tea.Tick(profilePollInterval, func(time.Time) tea.Msg { return profilePollMsg{} })
}

func tickToast(gen int) tea.Cmd {
	return tea.Tick(toastPollInterval, func(time.Time) tea.Msg { return toastTickMsg{gen: gen} })
}
