package analytics

import (
	"slices"

	"github.com/rxtech-lab/trade-journal/internal/types"
)

// FilterTrades applies the session, weekday, hour, tag and daily-count filters.
//
// A fully inclusive filter returns the input slice itself. Otherwise the
// per-trade stage keeps the input order, and when daily counts are selected
// the result is re-sorted oldest first (see FilterOutputOrder).
func FilterTrades(trades []types.Trade, filter types.FilterState) []types.Trade {
	if filter.IsFullyInclusive() {
		return trades
	}

	predicate := newTradePredicate(filter)
	survivors := make([]types.Trade, 0, len(trades))

	for _, t := range trades {
		if predicate.keep(t) {
			survivors = append(survivors, t)
		}
	}

	minCount, ok := filter.MinDailyCount()
	if !ok {
		return survivors
	}

	return limitPerDay(survivors, minCount)
}

type tradePredicate struct {
	sessions    map[types.Session]struct{}
	weekdays    map[int]struct{}
	hours       map[int]struct{}
	deactivated map[string]struct{}
}

func newTradePredicate(filter types.FilterState) tradePredicate {
	return tradePredicate{
		sessions:    filter.SessionSet(),
		weekdays:    filter.WeekdaySet(),
		hours:       filter.HourSet(),
		deactivated: filter.DeactivatedTagSet(),
	}
}

func (p tradePredicate) keep(t types.Trade) bool {
	hour := t.Hour()

	if _, ok := p.sessions[ClassifySession(hour)]; !ok {
		return false
	}

	if _, ok := p.weekdays[t.Weekday()]; !ok {
		return false
	}

	if _, ok := p.hours[hour]; !ok {
		return false
	}

	if len(p.deactivated) == 0 {
		return true
	}

	for _, tag := range t.TagList() {
		if _, ok := p.deactivated[tag]; ok {
			return false
		}
	}

	return true
}

// limitPerDay keeps the earliest maxPerDay trades of every date, oldest first.
// Selecting several counts behaves like selecting only the smallest one.
func limitPerDay(trades []types.Trade, maxPerDay int) []types.Trade {
	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, compareTradeTime)

	result := make([]types.Trade, 0, len(sorted))
	currentDate := ""
	keptToday := 0

	for _, t := range sorted {
		if t.Date != currentDate {
			currentDate = t.Date
			keptToday = 0
		}

		if keptToday < maxPerDay {
			result = append(result, t)
			keptToday++
		}
	}

	return result
}
