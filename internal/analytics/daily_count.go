package analytics

import "github.com/rxtech-lab/trade-journal/internal/types"

// DailyCountLimits are the per-day trade limits reported by AnalyzeDailyCounts.
var DailyCountLimits = []int{1, 2, 3, 4, 5}

// AnalyzeDailyCounts scores, for each limit, the days that had at least that
// many trades, counting only the last limit trades of each day (the latest
// ones when trades run oldest first). It is a report, not a filter.
func AnalyzeDailyCounts(trades []types.Trade, order types.TradeOrder) []types.DailyCountRecord {
	if len(trades) == 0 {
		return []types.DailyCountRecord{}
	}

	days := groupByDay(oriented(trades, order, types.OrderOldestFirst))
	records := make([]types.DailyCountRecord, 0, len(DailyCountLimits))

	for _, limit := range DailyCountLimits {
		record := types.DailyCountRecord{Limit: limit}

		for _, day := range days {
			if len(day) < limit {
				continue
			}

			record.Days++

			for _, t := range day[len(day)-limit:] {
				record.Trades++

				switch t.Result {
				case types.TradeResultProfit:
					record.Wins++
				case types.TradeResultLoss:
					record.Losses++
				}
			}
		}

		record.WinRate = percentOf(float64(record.Wins), float64(record.Trades))
		records = append(records, record)
	}

	return records
}

// groupByDay groups trades by date in order of first appearance, keeping the
// trade order inside each day.
func groupByDay(trades []types.Trade) [][]types.Trade {
	index := make(map[string]int)
	days := make([][]types.Trade, 0)

	for _, t := range trades {
		i, ok := index[t.Date]
		if !ok {
			i = len(days)
			index[t.Date] = i
			days = append(days, nil)
		}

		days[i] = append(days[i], t)
	}

	return days
}
