package analytics

import (
	"math"

	"github.com/rxtech-lab/trade-journal/internal/types"
)

// BuildEquityCurve returns the running balance after every trade, starting
// with a synthetic point at index 0 holding the start balance.
//
// With selectedMonth "all" the curve starts at initialBalance and covers every
// trade. With a month label ("Jan".."Dec") it covers only trades of that month
// label and starts at the month baseline (see monthBaseline), computed over
// allTrades. A nil allTrades uses trades as the baseline source.
func BuildEquityCurve(
	trades []types.Trade,
	allTrades []types.Trade,
	initialBalance float64,
	selectedMonth string,
	order types.TradeOrder,
) []types.EquityPoint {
	if allTrades == nil {
		allTrades = trades
	}

	startBalance := initialBalance
	scoped := trades

	if selectedMonth != types.MonthAll && selectedMonth != "" {
		monthTrades := tradesInMonth(oriented(trades, order, types.OrderNewestFirst), selectedMonth)
		if len(monthTrades) > 0 {
			startBalance = monthBaseline(monthTrades, allTrades, initialBalance)
		}

		scoped = monthTrades
		order = types.OrderNewestFirst
	}

	return walkEquityCurve(chronological(scoped, order), startBalance)
}

func walkEquityCurve(ordered []types.Trade, startBalance float64) []types.EquityPoint {
	points := make([]types.EquityPoint, 0, len(ordered)+1)
	points = append(points, types.EquityPoint{
		Index:                     0,
		Equity:                    startBalance,
		DrawdownLine:              nil,
		RunningMaxDrawdownPercent: 0,
	})

	walk := newEquityWalk(startBalance)
	runningMax := 0.0

	for i, t := range ordered {
		equity := walk.Step(t)

		var line *float64

		if equity < startBalance {
			reference := startBalance
			line = &reference
			runningMax = math.Max(runningMax, percentOf(startBalance-equity, startBalance))
		}

		points = append(points, types.EquityPoint{
			Index:                     i + 1,
			Equity:                    equity,
			DrawdownLine:              line,
			RunningMaxDrawdownPercent: runningMax,
		})
	}

	return points
}

// tradesInMonth keeps the trades whose month label matches, preserving order.
func tradesInMonth(trades []types.Trade, label string) []types.Trade {
	result := make([]types.Trade, 0)

	for _, t := range trades {
		if t.MonthLabel() == label {
			result = append(result, t)
		}
	}

	return result
}

// monthBaseline is the balance at the start of a month: the initial balance
// plus the net pnl of every trade in allTrades dated before the 1st of the
// month.
//
// Month labels merge years, so the month is anchored on a single trade: the
// last one of monthTrades in storage (newest first) order. Callers must pass
// monthTrades newest first.
func monthBaseline(monthTrades []types.Trade, allTrades []types.Trade, initialBalance float64) float64 {
	anchor := monthTrades[len(monthTrades)-1]

	return initialBalance + sumPnlBefore(allTrades, anchor.MonthStart())
}
