package analytics

import "github.com/rxtech-lab/trade-journal/internal/types"

// ComputeReport runs the whole analytics pipeline for one backtest, whose
// trades are in storage (newest first) order. GeneratedAt and Version are
// left for the caller.
func ComputeReport(backtest types.Backtest, filter types.FilterState) types.Report {
	filtered := FilterTrades(backtest.Trades, filter)
	filteredOrder := FilterOutputOrder(types.OrderNewestFirst, filter)

	return AssembleReport(backtest, filter, filtered, filteredOrder,
		BucketizeStopLoss(backtest.Trades),
		OriginTarget(backtest.Trades, backtest.Balance, types.OrderNewestFirst),
	)
}

// AssembleReport builds a report from an already filtered trade list and the
// filter-independent outputs, so callers can reuse memoized parts.
func AssembleReport(
	backtest types.Backtest,
	filter types.FilterState,
	filtered []types.Trade,
	filteredOrder types.TradeOrder,
	stopLoss []types.StopRangeBucket,
	originTarget float64,
) types.Report {
	return types.Report{
		BacktestID:     backtest.ID,
		BacktestName:   backtest.Name,
		InitialBalance: backtest.Balance,
		Filter:         filter,
		FilteredTrades: len(filtered),
		Stats:          ComputeStats(filtered, backtest.Balance, filteredOrder),
		EquityCurve:    BuildEquityCurve(filtered, backtest.Trades, backtest.Balance, filter.SelectedMonth, filteredOrder),
		Monthly:        AggregateMonthly(filtered, backtest.Trades, backtest.Balance, filteredOrder),
		OriginTarget:   originTarget,
		StopLoss:       stopLoss,
		DailyCounts:    AnalyzeDailyCounts(filtered, filteredOrder),
	}
}
