// Package tui is the terminal front-end of StudyHub.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/yigit/studyhub/internal/client"
)

// Run starts the terminal front-end and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, api *client.Client, log zerolog.Logger) error {
	model := NewModel(ctx, api, newFeatures(api), log)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
