package cache

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/types"
)

type Cache interface {
	Reset()
	Invalidate(backtestID string)
}

// TradeListKey identifies one version of a backtest's trade list. The journal
// bumps Revision on every mutation.
type TradeListKey struct {
	BacktestID string `json:"backtest_id"`
	Revision   uint64 `json:"revision"`
}

// FilteredTrades is a memoized filter result and the order it is in.
type FilteredTrades struct {
	Trades []types.Trade
	Order  types.TradeOrder
}

type filteredSlot struct {
	filterKey string
	value     FilteredTrades
}

type reportSlot struct {
	filterKey string
	value     types.Report
}

// backtestSlots holds the memoized outputs of one trade list revision.
// Filtered is keyed by the filter without its month, Report by the full
// filter. StopLoss and OriginTarget ignore the filter.
type backtestSlots struct {
	Revision     uint64
	Filtered     optional.Option[filteredSlot]
	StopLoss     optional.Option[[]types.StopRangeBucket]
	OriginTarget optional.Option[float64]
	Report       optional.Option[reportSlot]
}

func newBacktestSlots(revision uint64) *backtestSlots {
	return &backtestSlots{
		Revision:     revision,
		Filtered:     optional.None[filteredSlot](),
		StopLoss:     optional.None[[]types.StopRangeBucket](),
		OriginTarget: optional.None[float64](),
		Report:       optional.None[reportSlot](),
	}
}

// Stats counts lookups served from memory and lookups that had to compute.
type Stats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// AnalyticsCache memoizes analytics outputs per backtest. A lookup with a
// newer revision than the stored one drops every slot of that backtest.
// It is safe for concurrent use; compute functions run under the lock.
type AnalyticsCache struct {
	mu        sync.Mutex
	backtests map[string]*backtestSlots
	stats     Stats
}

func NewAnalyticsCache() *AnalyticsCache {
	return &AnalyticsCache{
		backtests: make(map[string]*backtestSlots),
	}
}

// Reset implements Cache.
func (c *AnalyticsCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.backtests = make(map[string]*backtestSlots)
	c.stats = Stats{}
}

// Invalidate implements Cache.
func (c *AnalyticsCache) Invalidate(backtestID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.backtests, backtestID)
}

// Stats returns the hit and miss counters.
func (c *AnalyticsCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

// Filtered returns the filter result for key and filter, computing it on a miss.
func (c *AnalyticsCache) Filtered(key TradeListKey, filter types.FilterState, compute func() FilteredTrades) FilteredTrades {
	c.mu.Lock()
	defer c.mu.Unlock()

	slots := c.slotsFor(key)
	filterKey := FilterKey(filter, false)

	if slots.Filtered.IsSome() {
		slot := slots.Filtered.Unwrap()
		if slot.filterKey == filterKey {
			c.stats.Hits++
			return slot.value
		}
	}

	c.stats.Misses++
	value := compute()
	slots.Filtered = optional.Some(filteredSlot{filterKey: filterKey, value: value})

	return value
}

// StopLoss returns the stop-loss buckets for key, computing them on a miss.
func (c *AnalyticsCache) StopLoss(key TradeListKey, compute func() []types.StopRangeBucket) []types.StopRangeBucket {
	c.mu.Lock()
	defer c.mu.Unlock()

	slots := c.slotsFor(key)
	if slots.StopLoss.IsSome() {
		c.stats.Hits++
		return slots.StopLoss.Unwrap()
	}

	c.stats.Misses++
	value := compute()
	slots.StopLoss = optional.Some(value)

	return value
}

// OriginTarget returns the origin target for key, computing it on a miss.
func (c *AnalyticsCache) OriginTarget(key TradeListKey, compute func() float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	slots := c.slotsFor(key)
	if slots.OriginTarget.IsSome() {
		c.stats.Hits++
		return slots.OriginTarget.Unwrap()
	}

	c.stats.Misses++
	value := compute()
	slots.OriginTarget = optional.Some(value)

	return value
}

// Report returns the full report for key and filter, computing it on a miss.
// Only the most recent filter is kept per backtest.
func (c *AnalyticsCache) Report(key TradeListKey, filter types.FilterState, compute func() types.Report) types.Report {
	c.mu.Lock()
	slots := c.slotsFor(key)
	filterKey := FilterKey(filter, true)

	if slots.Report.IsSome() {
		slot := slots.Report.Unwrap()
		if slot.filterKey == filterKey {
			c.stats.Hits++
			c.mu.Unlock()

			return slot.value
		}
	}

	c.stats.Misses++
	c.mu.Unlock()

	// compute reaches the other slots, which take the lock themselves
	value := compute()

	c.mu.Lock()
	defer c.mu.Unlock()

	// a newer revision or an invalidation may have landed meanwhile
	if current, ok := c.backtests[key.BacktestID]; ok && current.Revision == key.Revision {
		current.Report = optional.Some(reportSlot{filterKey: filterKey, value: value})
	}

	return value
}

// slotsFor returns the slots of key's backtest, starting fresh when the
// stored revision differs. Callers hold c.mu.
func (c *AnalyticsCache) slotsFor(key TradeListKey) *backtestSlots {
	slots, ok := c.backtests[key.BacktestID]
	if !ok || slots.Revision != key.Revision {
		slots = newBacktestSlots(key.Revision)
		c.backtests[key.BacktestID] = slots
	}

	return slots
}

// FilterKey returns a canonical string for the trade-filtering fields of a
// filter: selections are deduplicated and sorted, so equal sets share a key.
// withMonth adds SelectedMonth.
func FilterKey(filter types.FilterState, withMonth bool) string {
	sessions := make([]string, 0, len(filter.SelectedSessions))
	for session := range filter.SessionSet() {
		sessions = append(sessions, string(session))
	}

	tags := make([]string, 0, len(filter.DeactivatedTags))
	for tag := range filter.DeactivatedTagSet() {
		tags = append(tags, tag)
	}

	slices.Sort(sessions)
	slices.Sort(tags)

	var b strings.Builder
	fmt.Fprintf(&b, "s=%s;", strings.Join(sessions, ","))
	fmt.Fprintf(&b, "w=%v;", sortedKeys(filter.WeekdaySet()))
	fmt.Fprintf(&b, "h=%v;", sortedKeys(filter.HourSet()))
	fmt.Fprintf(&b, "t=%q;", tags)

	// only the smallest daily count has an effect
	if minCount, ok := filter.MinDailyCount(); ok {
		fmt.Fprintf(&b, "d=%d;", minCount)
	}

	if withMonth {
		fmt.Fprintf(&b, "m=%s;", filter.SelectedMonth)
	}

	return b.String()
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
