package types

// TradeOrder names the order of a trade slice handed to the analytics.
// Storage returns trades newest first; the filter engine's daily-count
// stage returns them oldest first.
type TradeOrder string

const (
	OrderNewestFirst TradeOrder = "newest_first"
	OrderOldestFirst TradeOrder = "oldest_first"
)

// IsValid reports whether o is a known ordering.
func (o TradeOrder) IsValid() bool {
	return o == OrderNewestFirst || o == OrderOldestFirst
}
