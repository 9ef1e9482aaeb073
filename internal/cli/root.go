package cli

import (
	"log/slog"

	"github.com/alexanderramin/dayplan/internal/interaction"
	"github.com/alexanderramin/dayplan/internal/progress"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/alexanderramin/dayplan/internal/settings"
	"github.com/spf13/cobra"
)

// App holds the services and live inputs used by CLI commands.
type App struct {
	Plan     service.PlanService
	Status   service.StatusService
	Settings service.SettingsService

	// Store is the live settings the timeline reads on every frame.
	Store    *settings.Store
	Clock    interaction.Clock
	Notifier progress.Notifier
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) clock() interaction.Clock {
	if a.Clock == nil {
		return interaction.SystemClock{}
	}
	return a.Clock
}

// NewRootCmd creates the top-level "dayplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dayplan",
		Short:         "Day timeline planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newItemCmd(app),
		newStatusCmd(app),
		newSettingsCmd(app),
		newTimelineCmd(app),
	)

	return root
}
