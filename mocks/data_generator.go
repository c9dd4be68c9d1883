package mocks

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/trade-journal/internal/types"
)

// TradeGenerator generates realistic journal trades for testing and benchmarking.
type TradeGenerator struct {
	rng *rand.Rand
}

// NewTradeGenerator creates a new TradeGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewTradeGenerator(seed int64) *TradeGenerator {
	return &TradeGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how trades are generated.
type GeneratorConfig struct {
	// StartDate is the day of the first trade
	StartDate time.Time
	// Count is the number of trades to generate
	Count int
	// MaxTradesPerDay caps how many trades share a date (at least 1)
	MaxTradesPerDay int
	// WinRate is the probability of a profit (0.0 to 1.0)
	WinRate float64
	// RiskFreeRate is the probability of a riskfree trade (0.0 to 1.0)
	RiskFreeRate float64
	// RiskAmount is the currency lost by a full 1R loss
	RiskAmount float64
	// MinRR and MaxRR bound the reward-to-risk ratio of each trade
	MinRR float64
	MaxRR float64
	// MinStop and MaxStop bound the stop-loss distance
	MinStop float64
	MaxStop float64
	// StopLossType is the unit of the stop-loss distance
	StopLossType types.StopLossType
	// Tags are sampled into each trade, each with 30% probability
	Tags []string
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:           1000,
		MaxTradesPerDay: 3,
		WinRate:         0.45,
		RiskFreeRate:    0.1,
		RiskAmount:      1000,
		MinRR:           1,
		MaxRR:           4,
		MinStop:         5,
		MaxStop:         40,
		StopLossType:    types.StopLossTypePips,
		Tags:            []string{"breakout", "reversal", "news", "fomo"},
	}
}

// Generate creates trades in storage order, newest first. Every trade passes
// Trade.Validate: wins gain rr*risk, losses lose risk, riskfree trades are flat.
func (g *TradeGenerator) Generate(config GeneratorConfig) []types.Trade {
	maxPerDay := max(config.MaxTradesPerDay, 1)
	trades := make([]types.Trade, 0, config.Count)
	day := config.StartDate

	for len(trades) < config.Count {
		perDay := min(1+g.rng.Intn(maxPerDay), config.Count-len(trades))
		// trading hours of the day, ascending
		hour := g.rng.Intn(24 - perDay + 1)

		for i := 0; i < perDay; i++ {
			trades = append(trades, g.trade(config, day, hour, g.rng.Intn(60)))
			hour += 1 + g.rng.Intn(max(1, (23-hour)/(perDay-i)))
			hour = min(hour, 23)
		}

		// skip weekends now and then, like a real journal
		day = day.AddDate(0, 0, 1+g.rng.Intn(2))
	}

	// newest first
	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}

	return trades
}

func (g *TradeGenerator) trade(config GeneratorConfig, day time.Time, hour, minute int) types.Trade {
	rr := roundToDecimals(config.MinRR+g.rng.Float64()*(config.MaxRR-config.MinRR), 2)
	if rr <= 0 {
		rr = 1
	}

	trade := types.Trade{
		Date:         day.Format(types.DateLayout),
		Time:         fmt.Sprintf("%02d:%02d", hour, minute),
		Position:     types.PositionLong,
		Risk:         config.RiskAmount,
		RRRatio:      rr,
		StopLoss:     roundToDecimals(config.MinStop+g.rng.Float64()*(config.MaxStop-config.MinStop), 1),
		StopLossType: config.StopLossType,
	}

	if g.rng.Intn(2) == 1 {
		trade.Position = types.PositionShort
	}

	switch roll := g.rng.Float64(); {
	case roll < config.WinRate:
		trade.Result = types.TradeResultProfit
		trade.Pnl = roundToDecimals(config.RiskAmount*rr, 2)
	case roll < config.WinRate+config.RiskFreeRate:
		trade.Result = types.TradeResultRiskFree
	default:
		trade.Result = types.TradeResultLoss
		trade.Pnl = -config.RiskAmount
	}

	tags := make([]string, 0, len(config.Tags))
	for _, tag := range config.Tags {
		if g.rng.Float64() < 0.3 {
			tags = append(tags, tag)
		}
	}

	trade.Tags = types.JoinTags(tags...)

	return trade
}

// Generate1K is a convenience function to generate 1,000 trades with default
// settings for benchmarking.
func Generate1K() []types.Trade {
	gen := NewTradeGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 1000

	return gen.Generate(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
