package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change planner settings",
	}
	cmd.AddCommand(newSettingsShowCmd(app), newSettingsSetCmd(app))
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatSettings(app.Store.Current()))
			return nil
		},
	}
}

// settingsFlags binds every settings field to a flag and applies only the
// flags the user changed.
type settingsFlags struct {
	s domain.Settings
}

func (f *settingsFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.s.ZoomLevel, "zoom", f.s.ZoomLevel, "Pixels (rows) per minute")
	fs.IntVar(&f.s.SnapStepMinutes, "snap", f.s.SnapStepMinutes, "Snap step in minutes")
	fs.IntVar(&f.s.StartHour, "start-hour", f.s.StartHour, "First visible hour")
	fs.IntVar(&f.s.EndHour, "end-hour", f.s.EndHour, "Hour the visible day ends")
	fs.IntVar(&f.s.DefaultDurationMinutes, "default-duration", f.s.DefaultDurationMinutes, "Default item length in minutes")
	fs.StringVar(&f.s.EndLabel, "end-label", f.s.EndLabel, "Status text once the day is done")
	fs.BoolVar(&f.s.NowAndNextInStatusBar, "now-and-next", f.s.NowAndNextInStatusBar, "Show Now/Next in the status bar")
	fs.BoolVar(&f.s.CircularProgress, "circular-progress", f.s.CircularProgress, "Use a pie instead of a bar")
	fs.BoolVar(&f.s.ShowTaskNotification, "notify", f.s.ShowTaskNotification, "Notify when a new item starts")
	fs.BoolVar(&f.s.TimelineColored, "colored", f.s.TimelineColored, "Colour items along a gradient")
	fs.StringVar(&f.s.TimelineStartColor, "start-color", f.s.TimelineStartColor, "Gradient start colour")
	fs.StringVar(&f.s.TimelineEndColor, "end-color", f.s.TimelineEndColor, "Gradient end colour")
}

func newSettingsSetCmd(app *App) *cobra.Command {
	flags := &settingsFlags{s: app.Store.Current()}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change and save settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return fmt.Errorf("nothing to change; see --help")
			}
			if err := app.Settings.Save(context.Background(), flags.s); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatSettings(app.Store.Current()))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func formatSettings(s domain.Settings) string {
	rows := [][]string{
		{"zoom", fmt.Sprintf("%g", s.ZoomLevel)},
		{"snap", fmt.Sprintf("%d min", s.SnapStepMinutes)},
		{"visible hours", fmt.Sprintf("%02d:00–%02d:00", s.StartHour, s.EndHour)},
		{"default duration", fmt.Sprintf("%d min", s.DefaultDurationMinutes)},
		{"end label", s.EndLabel},
		{"now and next", fmt.Sprint(s.NowAndNextInStatusBar)},
		{"circular progress", fmt.Sprint(s.CircularProgress)},
		{"notify", fmt.Sprint(s.ShowTaskNotification)},
		{"colored", fmt.Sprint(s.TimelineColored)},
		{"colors", s.TimelineStartColor + " → " + s.TimelineEndColor},
	}
	return formatter.RenderTable([]string{"SETTING", "VALUE"}, rows)
}
