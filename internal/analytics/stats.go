package analytics

import (
	"math"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/shopspring/decimal"
)

// ComputeStats builds the scorecard of a trade list. order names the
// orientation of trades; every path-dependent metric walks them oldest first.
// Empty input yields the zero summary.
func ComputeStats(trades []types.Trade, initialBalance float64, order types.TradeOrder) types.StatsSummary {
	summary := types.StatsSummary{}
	if len(trades) == 0 {
		return summary
	}

	var (
		rWins     float64
		winPnl    = decimal.Zero
		lossPnl   = decimal.Zero
		totalPnl  = decimal.Zero
		longPnl   = decimal.Zero
		shortPnl  = decimal.Zero
		longWins  int
		shortWins int
	)

	for _, t := range trades {
		pnl := decimal.NewFromFloat(t.Pnl)
		totalPnl = totalPnl.Add(pnl)

		switch t.Result {
		case types.TradeResultProfit:
			summary.Wins++
			rWins += t.RRRatio
			winPnl = winPnl.Add(pnl)
		case types.TradeResultLoss:
			summary.Losses++
			lossPnl = lossPnl.Add(pnl.Abs())
		}

		switch t.Position {
		case types.PositionLong:
			summary.Long.Trades++
			longPnl = longPnl.Add(pnl)

			if t.IsWin() {
				longWins++
			}
		case types.PositionShort:
			summary.Short.Trades++
			shortPnl = shortPnl.Add(pnl)

			if t.IsWin() {
				shortWins++
			}
		}
	}

	summary.TotalTrades = len(trades)
	summary.WinRate = percentOf(float64(summary.Wins), float64(summary.TotalTrades))
	summary.TotalPnl, _ = totalPnl.Float64()
	summary.TotalPnlPercent = percentOf(summary.TotalPnl, initialBalance)

	winSum, _ := winPnl.Float64()
	lossSum, _ := lossPnl.Float64()
	summary.AvgWin = perCount(winSum, summary.Wins)
	summary.AvgLoss = perCount(lossSum, summary.Losses)
	summary.Expectancy = perCount(summary.AvgWin*float64(summary.Wins)-summary.AvgLoss*float64(summary.Losses), summary.TotalTrades)

	// Losing and riskfree trades add nothing to the numerator; this is not a
	// per-trade R average.
	summary.AverageRR = perCount(rWins, summary.TotalTrades)
	summary.ProfitFactor, summary.ProfitFactorUnbounded = rMultipleFactor(rWins, summary.Losses)

	summary.Long.Wins = longWins
	summary.Long.WinRate = percentOf(float64(longWins), float64(summary.Long.Trades))
	summary.Long.Pnl, _ = longPnl.Float64()
	summary.Short.Wins = shortWins
	summary.Short.WinRate = percentOf(float64(shortWins), float64(summary.Short.Trades))
	summary.Short.Pnl, _ = shortPnl.Float64()

	ordered := chronological(trades, order)
	summary.RecoveryFactor = recoveryFactor(ordered)
	summary.MaxDrawdown, summary.PeakProfit = drawdownAndPeak(ordered, initialBalance)

	return summary
}

// recoveryFactor walks trades oldest first keeping a running R streak and its
// lowest point, and returns the largest climb from that low.
//
// A riskfree trade subtracts one R exactly like a loss. This is surprising but
// intentional: it is how the journal has always reported recovery.
func recoveryFactor(ordered []types.Trade) float64 {
	var streak, lowestStreak, best float64

	for _, t := range ordered {
		if t.IsWin() {
			streak += t.RRRatio
		} else {
			streak--
		}

		lowestStreak = math.Min(lowestStreak, streak)
		best = math.Max(best, streak-lowestStreak)
	}

	return best
}

// drawdownAndPeak walks equity oldest first from the initial balance and
// returns the largest peak-to-trough decline and the highest gain over the
// initial balance, both in percent.
func drawdownAndPeak(ordered []types.Trade, initialBalance float64) (float64, float64) {
	walk := newEquityWalk(initialBalance)
	peakEquity := initialBalance
	maxEquity := initialBalance
	maxDrawdown := 0.0

	for _, t := range ordered {
		equity := walk.Step(t)
		peakEquity = math.Max(peakEquity, equity)
		maxEquity = math.Max(maxEquity, equity)

		if equity < peakEquity {
			maxDrawdown = math.Max(maxDrawdown, percentOf(peakEquity-equity, peakEquity))
		}
	}

	return maxDrawdown, percentOf(maxEquity-initialBalance, initialBalance)
}
