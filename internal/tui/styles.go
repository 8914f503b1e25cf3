package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

var (
	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	toastStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var toastColors = map[notification.Kind]lipgloss.Color{
	notification.KindSuccess: lipgloss.Color("10"),
	notification.KindError:   lipgloss.Color("9"),
	notification.KindWarning: lipgloss.Color("11"),
	notification.KindInfo:    lipgloss.Color("12"),
}

func renderToast(n *notification.Notification) string {
	style := toastStyle
	if color, ok := toastColors[n.Kind]; ok {
		style = style.BorderForeground(color)
	}
	body := titleStyle.Render(n.Title)
	if n.Message != "" {
		body += "\n" + n.Message
	}
	return style.Render(body)
}
