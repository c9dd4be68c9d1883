package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/urfave/cli/v3"
)

func backtestCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Manage backtests",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an empty backtest",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:  "balance",
						Usage: "Starting balance. Defaults to the configured balance",
					},
					&cli.StringFlag{
						Name:  "balance-type",
						Usage: fmt.Sprintf("Balance type (%s or %s)", types.BalanceTypeFixed, types.BalanceTypeDynamic),
					},
				},
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					backtest, err := a.service.CreateBacktest(ctx, cmd.Args().First(), cmd.Float("balance"),
						types.BalanceType(cmd.String("balance-type")))
					if err != nil {
						return err
					}

					fmt.Fprintf(cmd.Root().Writer, "created backtest %s\n", backtest.ID)

					return nil
				}),
			},
			{
				Name:  "list",
				Usage: "List backtests",
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.service.EnsureBacktest(ctx); err != nil {
						return err
					}

					backtests, err := a.service.ListBacktests(ctx)
					if err != nil {
						return err
					}

					for _, b := range backtests {
						fmt.Fprintf(cmd.Root().Writer, "%s  %-24s %12.2f  %s\n", b.ID, b.Name, b.Balance, b.BalanceType)
					}

					return nil
				}),
			},
			{
				Name:      "rename",
				Usage:     "Rename a backtest",
				ArgsUsage: "NAME",
				Flags:     []cli.Flag{backtestFlag()},
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					id, err := a.backtestID(ctx, cmd)
					if err != nil {
						return err
					}

					_, err = a.service.RenameBacktest(ctx, id, cmd.Args().First())

					return err
				}),
			},
			{
				Name:  "balance",
				Usage: "Change the starting balance of a backtest",
				Flags: []cli.Flag{
					backtestFlag(),
					&cli.FloatFlag{
						Name:     "balance",
						Usage:    "Starting balance",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "balance-type",
						Usage: fmt.Sprintf("Balance type (%s or %s)", types.BalanceTypeFixed, types.BalanceTypeDynamic),
						Value: string(types.BalanceTypeFixed),
					},
				},
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					id, err := a.backtestID(ctx, cmd)
					if err != nil {
						return err
					}

					_, err = a.service.SetBalance(ctx, id, cmd.Float("balance"), types.BalanceType(cmd.String("balance-type")))

					return err
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete a backtest. The last backtest cannot be deleted",
				ArgsUsage: "ID",
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one backtest id")
					}

					return a.service.DeleteBacktest(ctx, cmd.Args().First())
				}),
			},
		},
	}
}
