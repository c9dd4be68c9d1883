package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/rxtech-lab/trade-journal/internal/types"
)

// originTargetQuantile picks the month peak that 80% of months beat.
const originTargetQuantile = 0.2

// AggregateMonthly scores trades per month label in calendar order, skipping
// months without trades. Month labels ignore the year: March 2023 and March
// 2024 share one "Mar" record. Month start balances are computed over
// allTrades; a nil allTrades uses trades.
func AggregateMonthly(
	trades []types.Trade,
	allTrades []types.Trade,
	initialBalance float64,
	order types.TradeOrder,
) []types.MonthlyRecord {
	if allTrades == nil {
		allTrades = trades
	}

	groups := groupByMonth(oriented(trades, order, types.OrderNewestFirst))
	records := make([]types.MonthlyRecord, 0, len(groups))

	for month := time.January; month <= time.December; month++ {
		monthTrades := groups[month-1]
		if len(monthTrades) == 0 {
			continue
		}

		records = append(records, scoreMonth(month, monthTrades, allTrades, initialBalance))
	}

	return records
}

// OriginTarget computes every month's peak profit over all trades, relative
// to initialBalance, and returns the value that 80% of months beat: the
// ascending sorted peaks at index floor(count*0.2). It ignores any filter.
func OriginTarget(allTrades []types.Trade, initialBalance float64, order types.TradeOrder) float64 {
	groups := groupByMonth(oriented(allTrades, order, types.OrderNewestFirst))
	peaks := make([]float64, 0, len(groups))

	for _, monthTrades := range groups {
		if len(monthTrades) == 0 {
			continue
		}

		startBalance := monthBaseline(monthTrades, allTrades, initialBalance)
		peakGain, _ := monthExcursions(monthTrades, startBalance)
		peaks = append(peaks, percentOf(peakGain, initialBalance))
	}

	if len(peaks) == 0 {
		return 0
	}

	slices.Sort(peaks)

	return peaks[int(math.Floor(float64(len(peaks))*originTargetQuantile))]
}

// groupByMonth buckets trades by calendar month, keeping their order inside
// each bucket. Trades with a malformed date are dropped.
func groupByMonth(trades []types.Trade) [12][]types.Trade {
	var groups [12][]types.Trade

	for _, t := range trades {
		month := t.Month()
		if month == 0 {
			continue
		}

		groups[month-1] = append(groups[month-1], t)
	}

	return groups
}

// scoreMonth expects monthTrades newest first.
func scoreMonth(month time.Month, monthTrades, allTrades []types.Trade, initialBalance float64) types.MonthlyRecord {
	record := types.MonthlyRecord{
		Month:  types.MonthLabel(month),
		Trades: len(monthTrades),
	}

	rWins := 0.0

	for _, t := range monthTrades {
		switch t.Result {
		case types.TradeResultProfit:
			record.Wins++
			rWins += t.RRRatio
		case types.TradeResultLoss:
			record.Losses++
		}
	}

	record.WinRate = percentOf(float64(record.Wins), float64(record.Trades))
	record.TotalPnl = sumPnl(monthTrades)
	record.PnlPercent = percentOf(record.TotalPnl, initialBalance)
	record.ProfitFactor, record.ProfitFactorUnbounded = rMultipleFactor(rWins, record.Losses)

	record.MonthStartBalance = monthBaseline(monthTrades, allTrades, initialBalance)
	peakGain, deepestDip := monthExcursions(monthTrades, record.MonthStartBalance)

	record.PeakTargetPercent = percentOf(peakGain, record.MonthStartBalance)
	record.PeakProfitPercent = percentOf(peakGain, initialBalance)
	// The two drawdowns measure the same dip against different bases: the
	// monthly report uses the backtest's initial balance, the peak-profit card
	// uses the month's own start balance.
	record.ReportMaxDrawdownPercent = percentOf(deepestDip, initialBalance)
	record.PeakCardDrawdownPercent = percentOf(deepestDip, record.MonthStartBalance)

	return record
}

// monthExcursions walks monthTrades (newest first) oldest first from
// startBalance and returns the largest gain above and the deepest dip below
// startBalance, both in currency.
func monthExcursions(monthTrades []types.Trade, startBalance float64) (float64, float64) {
	walk := newEquityWalk(startBalance)
	peakGain := 0.0
	deepestDip := 0.0

	for _, t := range chronological(monthTrades, types.OrderNewestFirst) {
		equity := walk.Step(t)
		peakGain = math.Max(peakGain, equity-startBalance)
		deepestDip = math.Max(deepestDip, startBalance-equity)
	}

	return peakGain, deepestDip
}
