package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var date dateValue

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   "Open the interactive day timeline",
		Long: `Open the day timeline in the terminal.

Drag an item to move it, drag its last row to change its length, and click
an empty slot to add an item there. Changes snap to the configured step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			m := newTimelineModel(ctx, app, date.dayOr(app.clock().Now()))
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err := p.Run()
			return err
		},
	}
	addDateFlag(cmd.Flags(), &date)
	return cmd
}
