package analytics

import (
	"slices"

	"github.com/rxtech-lab/trade-journal/internal/types"
)

func win(date, clock string, rr, pnl float64) types.Trade {
	return types.Trade{
		Date:         date,
		Time:         clock,
		Position:     types.PositionLong,
		Risk:         1,
		RRRatio:      rr,
		StopLoss:     1,
		StopLossType: types.StopLossTypePercent,
		Result:       types.TradeResultProfit,
		Pnl:          pnl,
	}
}

func loss(date, clock string, pnl float64) types.Trade {
	return types.Trade{
		Date:         date,
		Time:         clock,
		Position:     types.PositionShort,
		Risk:         1,
		RRRatio:      1,
		StopLoss:     1,
		StopLossType: types.StopLossTypePercent,
		Result:       types.TradeResultLoss,
		Pnl:          pnl,
	}
}

func riskFree(date, clock string) types.Trade {
	return types.Trade{
		Date:         date,
		Time:         clock,
		Position:     types.PositionLong,
		Risk:         1,
		RRRatio:      1,
		StopLoss:     1,
		StopLossType: types.StopLossTypePercent,
		Result:       types.TradeResultRiskFree,
	}
}

func withTags(t types.Trade, tags string) types.Trade {
	t.Tags = tags

	return t
}

func withStop(t types.Trade, stop float64) types.Trade {
	t.StopLoss = stop

	return t
}

// newestFirst turns an oldest-first fixture into storage order.
func newestFirst(trades ...types.Trade) []types.Trade {
	result := slices.Clone(trades)
	slices.Reverse(result)

	return result
}
