package analytics

import (
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/shopspring/decimal"
)

// sumPnl adds the pnl of every trade with decimal precision.
func sumPnl(trades []types.Trade) float64 {
	total := decimal.Zero
	for _, t := range trades {
		total = total.Add(decimal.NewFromFloat(t.Pnl))
	}

	result, _ := total.Float64()

	return result
}

// sumPnlBefore adds the pnl of every trade dated strictly before date.
func sumPnlBefore(trades []types.Trade, date string) float64 {
	total := decimal.Zero

	for _, t := range trades {
		if t.Date < date {
			total = total.Add(decimal.NewFromFloat(t.Pnl))
		}
	}

	result, _ := total.Float64()

	return result
}

// equityWalk accumulates pnl onto a starting balance without float drift.
type equityWalk struct {
	equity decimal.Decimal
}

func newEquityWalk(start float64) *equityWalk {
	return &equityWalk{equity: decimal.NewFromFloat(start)}
}

// Step applies one trade and returns the new equity.
func (w *equityWalk) Step(t types.Trade) float64 {
	w.equity = w.equity.Add(decimal.NewFromFloat(t.Pnl))
	result, _ := w.equity.Float64()

	return result
}

// percentOf returns amount/base*100, or 0 when base is not positive.
func percentOf(amount, base float64) float64 {
	if base <= 0 {
		return 0
	}

	return amount / base * 100
}

// perCount returns value/count, or 0 when count is 0.
func perCount(value float64, count int) float64 {
	if count == 0 {
		return 0
	}

	return value / float64(count)
}

// rMultipleFactor is the journal's R-based profit factor: summed winning R per
// losing trade. With no losses the summed winning R is reported as-is and the
// unbounded flag is raised.
func rMultipleFactor(rWins float64, losses int) (float64, bool) {
	if losses > 0 {
		return rWins / float64(losses), false
	}

	if rWins > 0 {
		return rWins, true
	}

	return 0, false
}
