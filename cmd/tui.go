package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moodify-app/moodify/internal/render"
	"github.com/moodify-app/moodify/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive mood picker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	theme := render.ParseTheme(r.config.Recommend.Theme)
	model := ui.NewModel(ctx, r.resolver, theme)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
