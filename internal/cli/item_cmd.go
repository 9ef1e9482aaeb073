package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items"},
		Short:   "Manage plan items",
	}
	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemMoveCmd(app),
		newItemResizeCmd(app),
		newItemRenameCmd(app),
		newItemDeleteCmd(app),
		newItemShiftCmd(app),
	)
	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var (
		start    clockValue
		date     dateValue
		duration int
	)

	cmd := &cobra.Command{
		Use:   "add [TITLE]",
		Short: "Add an item to the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			title := strings.Join(args, " ")

			if title == "" || !start.set {
				if !app.interactive() {
					return errors.New("a title and --start are required")
				}
				in := addItemInput{Title: title, Duration: strconv.Itoa(duration)}
				if start.set {
					in.Start = start.String()
				}
				if err := addItemForm(&in).Run(); err != nil {
					return err
				}
				var err error
				if title, start.minutes, duration, err = in.parse(); err != nil {
					return err
				}
			}

			item, err := app.Plan.AddItem(ctx, date.dayOr(app.clock().Now()), start.minutes, duration, title)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s\n", formatter.FormatItem(item))
			return warnOverlaps(ctx, app, out, item)
		},
	}

	cmd.Flags().Var(&start, "start", "Start time")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Length in minutes (default from settings)")
	addDateFlag(cmd.Flags(), &date)
	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var date dateValue

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the items of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.clock().Now()
			day := date.dayOr(now)
			items, err := app.Plan.ListDay(context.Background(), day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(day, items, now))
			return nil
		},
	}
	addDateFlag(cmd.Flags(), &date)
	return cmd
}

func newItemMoveCmd(app *App) *cobra.Command {
	var start clockValue

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Change an item's start time, keeping its length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := app.Plan.Move(ctx, id, start.minutes)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Moved %s\n", formatter.FormatItem(item))
			return warnOverlaps(ctx, app, out, item)
		},
	}
	cmd.Flags().Var(&start, "start", "New start time")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newItemResizeCmd(app *App) *cobra.Command {
	var duration int

	cmd := &cobra.Command{
		Use:   "resize ID",
		Short: "Change an item's length, keeping its start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := app.Plan.Resize(ctx, id, duration)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Resized %s\n", formatter.FormatItem(item))
			return warnOverlaps(ctx, app, out, item)
		},
	}
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "New length in minutes")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func newItemRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID TITLE",
		Short: "Change an item's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := app.Plan.Rename(ctx, id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s\n", formatter.FormatItem(item))
			return nil
		},
	}
}

func newItemDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plan.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatter.ShortID(id))
			return nil
		},
	}
}

func newItemShiftCmd(app *App) *cobra.Command {
	var (
		from  clockValue
		date  dateValue
		delta int
	)

	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Push every item from a time onwards by some minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.clock().Now()
			fromMin := from.minutes
			if !from.set {
				fromMin = now.Hour()*60 + now.Minute()
			}
			shifted, err := app.Plan.ShiftFrom(context.Background(), date.dayOr(now), fromMin, delta)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Shifted %d item(s) by %d min\n", len(shifted), delta)
			for _, item := range shifted {
				fmt.Fprintf(out, "  %s\n", formatter.FormatItem(item))
			}
			return nil
		},
	}
	cmd.Flags().Var(&from, "from", "Shift items starting at or after this time (default now)")
	cmd.Flags().IntVar(&delta, "by", 0, "Minutes to shift by; negative moves earlier")
	_ = cmd.MarkFlagRequired("by")
	addDateFlag(cmd.Flags(), &date)
	return cmd
}

// resolveItemID accepts a full ID or a unique prefix of one of today's items.
func resolveItemID(ctx context.Context, app *App, ref string) (string, error) {
	if _, err := app.Plan.GetItem(ctx, ref); err == nil {
		return ref, nil
	}
	items, err := app.Plan.ListDay(ctx, app.clock().Now())
	if err != nil {
		return "", err
	}
	var match string
	for _, item := range items {
		if strings.HasPrefix(item.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("item reference %q is ambiguous", ref)
			}
			match = item.ID
		}
	}
	if match == "" {
		return ref, nil
	}
	return match, nil
}

func warnOverlaps(ctx context.Context, app *App, out io.Writer, item domain.PlanItem) error {
	overlaps, err := app.Plan.Overlaps(ctx, item)
	if err != nil {
		return err
	}
	for _, o := range overlaps {
		fmt.Fprintf(out, "%s overlaps %s\n", formatter.StyleYellow.Render("warning:"), formatter.FormatItem(o))
	}
	return nil
}
