package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/urfave/cli/v3"
)

func tradeFlags(required bool) []cli.Flag {
	return []cli.Flag{
		backtestFlag(),
		&cli.StringFlag{Name: "date", Usage: "Trade date in `YYYY-MM-DD` format", Required: required},
		&cli.StringFlag{Name: "time", Usage: "Local clock time in `HH:MM` format", Required: required},
		&cli.StringFlag{Name: "position", Usage: "long or short", Required: required},
		&cli.FloatFlag{Name: "risk", Usage: "Risk in percent of the balance", Value: 1},
		&cli.FloatFlag{Name: "rr", Usage: "Planned reward to risk ratio", Required: required},
		&cli.FloatFlag{Name: "stop-loss", Usage: "Stop distance"},
		&cli.StringFlag{Name: "stop-loss-type", Usage: "pips or percent", Value: string(types.StopLossTypePips)},
		&cli.StringFlag{Name: "tags", Usage: "Comma separated tags"},
		&cli.StringFlag{Name: "result", Usage: "profit, loss or riskfree", Required: required},
		&cli.FloatFlag{Name: "pnl", Usage: "Signed profit or loss"},
		&cli.StringFlag{Name: "screenshot", Usage: "Screenshot URL"},
	}
}

// tradeFromFlags overlays the set flags onto base.
func tradeFromFlags(cmd *cli.Command, base types.Trade) types.Trade {
	trade := base

	if cmd.IsSet("date") || base.Date == "" {
		trade.Date = cmd.String("date")
	}

	if cmd.IsSet("time") || base.Time == "" {
		trade.Time = cmd.String("time")
	}

	if cmd.IsSet("position") || base.Position == "" {
		trade.Position = types.Position(cmd.String("position"))
	}

	if cmd.IsSet("risk") || base.Risk == 0 {
		trade.Risk = cmd.Float("risk")
	}

	if cmd.IsSet("rr") || base.RRRatio == 0 {
		trade.RRRatio = cmd.Float("rr")
	}

	if cmd.IsSet("stop-loss") {
		trade.StopLoss = cmd.Float("stop-loss")
	}

	if cmd.IsSet("stop-loss-type") || base.StopLossType == "" {
		trade.StopLossType = types.StopLossType(cmd.String("stop-loss-type"))
	}

	if cmd.IsSet("tags") {
		trade.Tags = cmd.String("tags")
	}

	if cmd.IsSet("result") || base.Result == "" {
		trade.Result = types.TradeResult(cmd.String("result"))
	}

	if cmd.IsSet("pnl") {
		trade.Pnl = cmd.Float("pnl")
	}

	if cmd.IsSet("screenshot") {
		trade.ScreenshotURL = cmd.String("screenshot")
	}

	return trade
}

func tradeCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "trade",
		Usage: "Log and edit trades",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Log a trade",
				Flags: tradeFlags(true),
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					id, err := a.backtestID(ctx, cmd)
					if err != nil {
						return err
					}

					trade, err := a.service.AddTrade(ctx, id, tradeFromFlags(cmd, types.Trade{}))
					if err != nil {
						return err
					}

					fmt.Fprintf(cmd.Root().Writer, "added trade %s\n", trade.ID)

					return nil
				}),
			},
			{
				Name:      "edit",
				Usage:     "Change fields of a trade",
				ArgsUsage: "TRADE_ID",
				Flags:     tradeFlags(false),
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					id, err := a.backtestID(ctx, cmd)
					if err != nil {
						return err
					}

					backtest, err := a.service.GetBacktest(ctx, id)
					if err != nil {
						return err
					}

					index := slices.IndexFunc(backtest.Trades, func(t types.Trade) bool { return t.ID == cmd.Args().First() })
					if index < 0 {
						return fmt.Errorf("trade %s not found", cmd.Args().First())
					}

					return a.service.EditTrade(ctx, id, tradeFromFlags(cmd, backtest.Trades[index]))
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete a trade",
				ArgsUsage: "TRADE_ID",
				Flags:     []cli.Flag{backtestFlag()},
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					id, err := a.backtestID(ctx, cmd)
					if err != nil {
						return err
					}

					return a.service.DeleteTrade(ctx, id, cmd.Args().First())
				}),
			},
			{
				Name:  "list",
				Usage: "List the trades of a backtest",
				Flags: []cli.Flag{
					backtestFlag(),
					&cli.StringFlag{
						Name:  "order",
						Usage: fmt.Sprintf("%s or %s. Defaults to the configured order", types.OrderNewestFirst, types.OrderOldestFirst),
					},
				},
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					id, err := a.backtestID(ctx, cmd)
					if err != nil {
						return err
					}

					backtest, err := a.service.GetBacktest(ctx, id)
					if err != nil {
						return err
					}

					order := a.config.ListOrder
					if cmd.IsSet("order") {
						order = types.TradeOrder(cmd.String("order"))
						if !order.IsValid() {
							return fmt.Errorf("unknown order %q", order)
						}
					}

					trades := slices.Clone(backtest.Trades)
					if order == types.OrderOldestFirst {
						slices.Reverse(trades)
					}

					return renderTrades(cmd.Root().Writer, trades)
				}),
			},
			{
				Name:  "undo",
				Usage: "Revert the last trade change made in this session",
				Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
					description, err := a.service.Undo(ctx)
					if err != nil {
						return err
					}

					fmt.Fprintf(cmd.Root().Writer, "undid %s\n", description)

					return nil
				}),
			},
		},
	}
}
