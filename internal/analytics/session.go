package analytics

import "github.com/rxtech-lab/trade-journal/internal/types"

// ClassifySession maps a local clock hour to a trading session. The ranges
// overlap and are checked in order, first match wins:
//
//	Tokyo   [4, 12)
//	London  [11, 19)
//	NewYork [16, 24)
//	Sydney  [0, 8)
//
// Anything else falls back to London.
func ClassifySession(hour int) types.Session {
	switch {
	case hour >= 4 && hour < 12:
		return types.SessionTokyo
	case hour >= 11 && hour < 19:
		return types.SessionLondon
	case hour >= 16 && hour < 24:
		return types.SessionNewYork
	case hour >= 0 && hour < 8:
		return types.SessionSydney
	default:
		return types.SessionLondon
	}
}
