package analytics

import (
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/shopspring/decimal"
)

const stopLossBuckets = 5

// BucketizeStopLoss splits the stop-loss span of all trades into five equal
// ranges and scores each one. Ranges are half-open [start, end) except the
// last, which includes the largest stop. When every stop is equal all trades
// land in the first bucket. It ignores any filter.
func BucketizeStopLoss(allTrades []types.Trade) []types.StopRangeBucket {
	if len(allTrades) == 0 {
		return []types.StopRangeBucket{}
	}

	minStop, maxStop := allTrades[0].StopLoss, allTrades[0].StopLoss
	for _, t := range allTrades[1:] {
		minStop = min(minStop, t.StopLoss)
		maxStop = max(maxStop, t.StopLoss)
	}

	accumulators := make([]stopBucketAccumulator, stopLossBuckets)

	if minStop == maxStop {
		for i := range accumulators {
			accumulators[i].start, accumulators[i].end = minStop, maxStop
		}

		for _, t := range allTrades {
			accumulators[0].add(t)
		}
	} else {
		width := (maxStop - minStop) / stopLossBuckets
		for i := range accumulators {
			accumulators[i].start = minStop + float64(i)*width
			accumulators[i].end = minStop + float64(i+1)*width
		}

		accumulators[stopLossBuckets-1].end = maxStop

		for _, t := range allTrades {
			accumulators[bucketIndex(accumulators, t.StopLoss)].add(t)
		}
	}

	buckets := make([]types.StopRangeBucket, 0, stopLossBuckets)
	for _, acc := range accumulators {
		buckets = append(buckets, acc.bucket())
	}

	return buckets
}

func bucketIndex(accumulators []stopBucketAccumulator, stop float64) int {
	last := len(accumulators) - 1

	for i := 0; i < last; i++ {
		if stop >= accumulators[i].start && stop < accumulators[i].end {
			return i
		}
	}

	return last
}

type stopBucketAccumulator struct {
	start   float64
	end     float64
	trades  int
	wins    int
	losses  int
	rWins   float64
	stopSum float64
	pnl     decimal.Decimal
}

func (a *stopBucketAccumulator) add(t types.Trade) {
	a.trades++
	a.stopSum += t.StopLoss
	a.pnl = a.pnl.Add(decimal.NewFromFloat(t.Pnl))

	switch t.Result {
	case types.TradeResultProfit:
		a.wins++
		a.rWins += t.RRRatio
	case types.TradeResultLoss:
		a.losses++
	}
}

func (a *stopBucketAccumulator) bucket() types.StopRangeBucket {
	totalPnl, _ := a.pnl.Float64()

	return types.StopRangeBucket{
		RangeStart: a.start,
		RangeEnd:   a.end,
		Trades:     a.trades,
		WinRate:    percentOf(float64(a.wins), float64(a.trades)),
		Expectancy: perCount(a.rWins-float64(a.losses), a.trades),
		AvgStop:    perCount(a.stopSum, a.trades),
		TotalPnl:   totalPnl,
		// Shown as "profit per day" but divided by trades, not days. Kept so the
		// reported figure does not change.
		ProfitPerDay: perCount(totalPnl, a.trades),
	}
}
