package analytics

import (
	"testing"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/mocks"
	"github.com/stretchr/testify/suite"
)

type StatsTestSuite struct {
	suite.Suite
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func (suite *StatsTestSuite) TestEmptyTradesYieldZeroSummary() {
	suite.Equal(types.StatsSummary{}, ComputeStats(nil, 100000, types.OrderNewestFirst))
	suite.Equal(types.StatsSummary{}, ComputeStats([]types.Trade{}, 100000, types.OrderOldestFirst))
}

func (suite *StatsTestSuite) TestSingleWin() {
	trades := []types.Trade{win("2024-03-11", "09:00", 2, 2000)}

	stats := ComputeStats(trades, 100000, types.OrderNewestFirst)

	suite.Equal(1, stats.TotalTrades)
	suite.Equal(1, stats.Wins)
	suite.Equal(0, stats.Losses)
	suite.InDelta(100.0, stats.WinRate, 1e-9)
	suite.InDelta(2000.0, stats.TotalPnl, 1e-9)
	suite.InDelta(2.0, stats.TotalPnlPercent, 1e-9)
	suite.InDelta(2000.0, stats.AvgWin, 1e-9)
	suite.InDelta(0.0, stats.AvgLoss, 1e-9)
	suite.InDelta(2000.0, stats.Expectancy, 1e-9)
	suite.InDelta(2.0, stats.AverageRR, 1e-9)
	suite.InDelta(2.0, stats.ProfitFactor, 1e-9)
	suite.True(stats.ProfitFactorUnbounded)
	suite.InDelta(2.0, stats.RecoveryFactor, 1e-9)
	suite.InDelta(0.0, stats.MaxDrawdown, 1e-9)
	suite.InDelta(2.0, stats.PeakProfit, 1e-9)
}

func (suite *StatsTestSuite) TestMixedTrades() {
	trades := newestFirst(
		win("2024-01-02", "09:00", 2, 2000),
		loss("2024-01-03", "09:00", -1000),
		riskFree("2024-01-04", "09:00"),
		win("2024-01-05", "09:00", 3, 3000),
		loss("2024-01-06", "09:00", -1000),
	)

	stats := ComputeStats(trades, 100000, types.OrderNewestFirst)

	suite.Equal(5, stats.TotalTrades)
	suite.Equal(2, stats.Wins)
	suite.Equal(2, stats.Losses)
	suite.InDelta(40.0, stats.WinRate, 1e-9)
	suite.InDelta(3000.0, stats.TotalPnl, 1e-9)
	suite.InDelta(3.0, stats.TotalPnlPercent, 1e-9)
	suite.InDelta(2500.0, stats.AvgWin, 1e-9)
	suite.InDelta(1000.0, stats.AvgLoss, 1e-9)
	suite.InDelta(600.0, stats.Expectancy, 1e-9)
	suite.InDelta(1.0, stats.AverageRR, 1e-9)
	suite.InDelta(2.5, stats.ProfitFactor, 1e-9)
	suite.False(stats.ProfitFactorUnbounded)
	suite.InDelta(3.0, stats.RecoveryFactor, 1e-9)
	suite.InDelta(1000.0/102000.0*100, stats.MaxDrawdown, 1e-9)
	suite.InDelta(4.0, stats.PeakProfit, 1e-9)

	suite.Equal(3, stats.Long.Trades)
	suite.Equal(2, stats.Long.Wins)
	suite.InDelta(200.0/3.0, stats.Long.WinRate, 1e-9)
	suite.InDelta(5000.0, stats.Long.Pnl, 1e-9)
	suite.Equal(2, stats.Short.Trades)
	suite.Equal(0, stats.Short.Wins)
	suite.InDelta(0.0, stats.Short.WinRate, 1e-9)
	suite.InDelta(-2000.0, stats.Short.Pnl, 1e-9)
}

func (suite *StatsTestSuite) TestMaxDrawdownFromPeak() {
	trades := newestFirst(
		loss("2024-01-01", "09:00", -10000),
		win("2024-01-02", "09:00", 1, 5000),
		loss("2024-01-03", "09:00", -15000),
	)

	stats := ComputeStats(trades, 100000, types.OrderNewestFirst)
	suite.InDelta(20.0, stats.MaxDrawdown, 1e-9)
	suite.InDelta(0.0, stats.PeakProfit, 1e-9)
}

func (suite *StatsTestSuite) TestOrderDoesNotChangeTheResult() {
	oldest := []types.Trade{
		loss("2024-01-01", "09:00", -10000),
		win("2024-01-02", "09:00", 1, 5000),
		loss("2024-01-03", "09:00", -15000),
		win("2024-01-04", "09:00", 4, 20000),
	}

	suite.Equal(
		ComputeStats(oldest, 100000, types.OrderOldestFirst),
		ComputeStats(newestFirst(oldest...), 100000, types.OrderNewestFirst),
	)
}

func (suite *StatsTestSuite) TestRiskFreeCountsAsLostRInRecovery() {
	trades := newestFirst(
		win("2024-01-01", "09:00", 1, 100),
		riskFree("2024-01-02", "09:00"),
		riskFree("2024-01-03", "09:00"),
		win("2024-01-04", "09:00", 1, 100),
	)

	stats := ComputeStats(trades, 100000, types.OrderNewestFirst)
	// Treating riskfree as neutral would give 2.
	suite.InDelta(1.0, stats.RecoveryFactor, 1e-9)
}

func (suite *StatsTestSuite) TestOnlyLossesHaveZeroProfitFactor() {
	trades := newestFirst(
		loss("2024-01-01", "09:00", -100),
		loss("2024-01-02", "09:00", -100),
	)

	stats := ComputeStats(trades, 100000, types.OrderNewestFirst)
	suite.InDelta(0.0, stats.ProfitFactor, 1e-9)
	suite.False(stats.ProfitFactorUnbounded)
	suite.InDelta(0.0, stats.RecoveryFactor, 1e-9)
	suite.InDelta(-100.0, stats.Expectancy, 1e-9)
}

func (suite *StatsTestSuite) TestZeroBalanceDoesNotDivide() {
	trades := []types.Trade{win("2024-01-01", "09:00", 1, 100)}

	stats := ComputeStats(trades, 0, types.OrderNewestFirst)
	suite.InDelta(0.0, stats.TotalPnlPercent, 1e-9)
	suite.InDelta(0.0, stats.PeakProfit, 1e-9)
}

func (suite *StatsTestSuite) TestSummaryBounds() {
	for seed := int64(1); seed <= 30; seed++ {
		config := mocks.DefaultConfig()
		config.Count = int(seed) * 7
		trades := mocks.NewTradeGenerator(seed).Generate(config)

		stats := ComputeStats(trades, 50000, types.OrderNewestFirst)

		suite.Equal(len(trades), stats.TotalTrades)
		suite.LessOrEqual(stats.Wins+stats.Losses, stats.TotalTrades)
		suite.GreaterOrEqual(stats.WinRate, 0.0)
		suite.LessOrEqual(stats.WinRate, 100.0)
		suite.GreaterOrEqual(stats.MaxDrawdown, 0.0)
		suite.GreaterOrEqual(stats.RecoveryFactor, 0.0)
		suite.GreaterOrEqual(stats.PeakProfit, 0.0)
		suite.Equal(stats.TotalTrades, stats.Long.Trades+stats.Short.Trades)
	}
}

func (suite *StatsTestSuite) TestFilteredSummaryBounds() {
	trades := mocks.Generate1K()
	filter := types.DefaultFilterState()
	filter.SelectedSessions = []types.Session{types.SessionLondon, types.SessionNewYork}
	filter.DeactivatedTags = []string{"fomo"}
	filter.SelectedDailyCounts = []int{2}

	filtered := FilterTrades(trades, filter)
	suite.Less(len(filtered), len(trades))

	stats := ComputeStats(filtered, 100000, FilterOutputOrder(types.OrderNewestFirst, filter))
	suite.LessOrEqual(stats.Wins+stats.Losses, stats.TotalTrades)
	suite.LessOrEqual(stats.WinRate, 100.0)
	suite.GreaterOrEqual(stats.MaxDrawdown, 0.0)

	curve := BuildEquityCurve(filtered, trades, 100000, types.MonthAll, FilterOutputOrder(types.OrderNewestFirst, filter))
	suite.Len(curve, len(filtered)+1)
	suite.InDelta(100000.0, curve[0].Equity, 1e-9)
}
