package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var (
		date dateValue
		at   clockValue
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the item in progress and what comes next",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.clock().Now()
			if date.set || at.set {
				day := date.dayOr(now)
				minutes := now.Hour()*60 + now.Minute()
				if at.set {
					minutes = at.minutes
				}
				now = day.Add(time.Duration(minutes) * time.Minute)
			}

			snap, _, err := app.Status.Status(context.Background(), now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(snap, app.Store.Current()))
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &date)
	cmd.Flags().Var(&at, "at", "Evaluate at this time of day instead of now")
	return cmd
}
