package analytics

import (
	"cmp"
	"slices"

	"github.com/rxtech-lab/trade-journal/internal/types"
)

// oriented returns a copy of trades rearranged from one ordering to another.
// The input slice is never modified.
func oriented(trades []types.Trade, from, to types.TradeOrder) []types.Trade {
	result := slices.Clone(trades)
	if from != to {
		slices.Reverse(result)
	}

	return result
}

// chronological returns a copy of trades sorted oldest first by (date, time).
// Trades sharing a timestamp keep their oldest-first orientation.
func chronological(trades []types.Trade, order types.TradeOrder) []types.Trade {
	result := oriented(trades, order, types.OrderOldestFirst)
	slices.SortStableFunc(result, compareTradeTime)

	return result
}

func compareTradeTime(a, b types.Trade) int {
	if c := cmp.Compare(a.Date, b.Date); c != 0 {
		return c
	}

	return cmp.Compare(a.Time, b.Time)
}

// FilterOutputOrder returns the ordering of FilterTrades' result for an input
// in the given order. The daily-count stage always emits oldest first.
func FilterOutputOrder(input types.TradeOrder, filter types.FilterState) types.TradeOrder {
	if filter.IsFullyInclusive() {
		return input
	}

	if _, ok := filter.MinDailyCount(); ok {
		return types.OrderOldestFirst
	}

	return input
}
