package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"github.com/urfave/cli/v3"
)

// parseInts parses every value as an int; comma separated values are split.
func parseInts(flag string, values []string) ([]int, error) {
	result := []int{}

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid --%s value %q", flag, part)
			}

			result = append(result, n)
		}
	}

	return result, nil
}

// filterFromFlags overlays the set flags onto the saved filter.
func filterFromFlags(cmd *cli.Command, saved types.FilterState) (types.FilterState, error) {
	filter := saved
	if cmd.Bool("reset") {
		filter = types.DefaultFilterState()
	}

	if cmd.IsSet("session") {
		filter.SelectedSessions = []types.Session{}
		for _, s := range cmd.StringSlice("session") {
			filter.SelectedSessions = append(filter.SelectedSessions, types.Session(s))
		}
	}

	intFlags := []struct {
		name   string
		target *[]int
	}{
		{"weekday", &filter.SelectedWeekdays},
		{"hour", &filter.SelectedHours},
		{"daily-count", &filter.SelectedDailyCounts},
	}

	for _, f := range intFlags {
		if !cmd.IsSet(f.name) {
			continue
		}

		values, err := parseInts(f.name, cmd.StringSlice(f.name))
		if err != nil {
			return types.FilterState{}, err
		}

		*f.target = values
	}

	if cmd.IsSet("deactivate-tag") {
		filter.DeactivatedTags = cmd.StringSlice("deactivate-tag")
	}

	if cmd.IsSet("month") {
		month := cmd.String("month")
		if !types.IsValidMonthSelection(month) {
			return types.FilterState{}, errors.Newf(errors.ErrCodeInvalidMonth, "invalid --month %q, want all or Jan..Dec", month)
		}

		filter.SelectedMonth = month
	}

	return filter, nil
}

func filterCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Show or change the saved filter of a backtest",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the saved filter as JSON",
				Flags: []cli.Flag{backtestFlag()},
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					id, err := a.backtestID(ctx, cmd)
					if err != nil {
						return err
					}

					filter, err := a.service.GetFilter(ctx, id)
					if err != nil {
						return err
					}

					data, err := json.MarshalIndent(filter, "", "  ")
					if err != nil {
						return err
					}

					fmt.Fprintln(cmd.Root().Writer, string(data))

					return nil
				}),
			},
			{
				Name:  "set",
				Usage: "Change the saved filter. Unset flags keep their saved value",
				Flags: []cli.Flag{
					backtestFlag(),
					&cli.BoolFlag{Name: "reset", Usage: "Start from the select-everything filter"},
					&cli.StringSliceFlag{Name: "session", Usage: "Tokyo, London, NewYork or Sydney"},
					&cli.StringSliceFlag{Name: "weekday", Usage: "Weekday 0-6, 0 is Sunday"},
					&cli.StringSliceFlag{Name: "hour", Usage: "Hour 0-23"},
					&cli.StringSliceFlag{Name: "deactivate-tag", Usage: "Drop trades carrying this tag"},
					&cli.StringSliceFlag{Name: "daily-count", Usage: "Keep at most this many earliest trades per day (smallest value wins)"},
					&cli.StringFlag{Name: "month", Usage: "all or Jan..Dec"},
				},
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					id, err := a.backtestID(ctx, cmd)
					if err != nil {
						return err
					}

					saved, err := a.service.GetFilter(ctx, id)
					if err != nil {
						return err
					}

					filter, err := filterFromFlags(cmd, saved)
					if err != nil {
						return err
					}

					return a.service.SetFilter(ctx, id, filter)
				}),
			},
		},
	}
}
