package analytics

import (
	"testing"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/stretchr/testify/suite"
)

type EquityTestSuite struct {
	suite.Suite
}

func TestEquitySuite(t *testing.T) {
	suite.Run(t, new(EquityTestSuite))
}

func (suite *EquityTestSuite) TestEmptyCurveHasOnlyTheStartPoint() {
	curve := BuildEquityCurve(nil, nil, 100000, types.MonthAll, types.OrderNewestFirst)

	suite.Require().Len(curve, 1)
	suite.Equal(0, curve[0].Index)
	suite.InDelta(100000.0, curve[0].Equity, 1e-9)
	suite.Nil(curve[0].DrawdownLine)
}

func (suite *EquityTestSuite) TestCurveTracksDrawdownBelowStart() {
	trades := newestFirst(
		loss("2024-01-01", "09:00", -10000),
		win("2024-01-02", "09:00", 1, 5000),
		loss("2024-01-03", "09:00", -15000),
	)

	curve := BuildEquityCurve(trades, trades, 100000, types.MonthAll, types.OrderNewestFirst)
	suite.Require().Len(curve, 4)

	expectedEquity := []float64{100000, 90000, 95000, 80000}
	expectedRunning := []float64{0, 10, 10, 20}

	for i, point := range curve {
		suite.Equal(i, point.Index)
		suite.InDelta(expectedEquity[i], point.Equity, 1e-9)
		suite.InDelta(expectedRunning[i], point.RunningMaxDrawdownPercent, 1e-9)
	}

	suite.Nil(curve[0].DrawdownLine)

	for _, point := range curve[1:] {
		suite.Require().NotNil(point.DrawdownLine)
		suite.InDelta(100000.0, *point.DrawdownLine, 1e-9)
	}
}

func (suite *EquityTestSuite) TestNoDrawdownLineAboveStart() {
	trades := newestFirst(
		win("2024-01-01", "09:00", 1, 1000),
		loss("2024-01-02", "09:00", -500),
	)

	curve := BuildEquityCurve(trades, nil, 100000, "", types.OrderNewestFirst)
	suite.Require().Len(curve, 3)
	suite.InDelta(101000.0, curve[1].Equity, 1e-9)
	suite.InDelta(100500.0, curve[2].Equity, 1e-9)

	for _, point := range curve {
		suite.Nil(point.DrawdownLine)
		suite.InDelta(0.0, point.RunningMaxDrawdownPercent, 1e-9)
	}
}

func (suite *EquityTestSuite) TestOrderDoesNotChangeTheCurve() {
	oldest := []types.Trade{
		win("2024-01-01", "09:00", 1, 1000),
		loss("2024-01-02", "09:00", -3000),
		win("2024-01-03", "09:00", 1, 700),
	}

	suite.Equal(
		BuildEquityCurve(oldest, nil, 100000, types.MonthAll, types.OrderOldestFirst),
		BuildEquityCurve(newestFirst(oldest...), nil, 100000, types.MonthAll, types.OrderNewestFirst),
	)
}

func (suite *EquityTestSuite) TestMonthStartsAtBalanceBeforeTheMonth() {
	all := newestFirst(
		win("2024-01-10", "09:00", 1, 1000),
		loss("2024-02-10", "09:00", -300),
		win("2024-03-05", "09:00", 1, 700),
	)

	curve := BuildEquityCurve(all, all, 100000, "Mar", types.OrderNewestFirst)
	suite.Require().Len(curve, 2)
	suite.InDelta(100700.0, curve[0].Equity, 1e-9)
	suite.InDelta(101400.0, curve[1].Equity, 1e-9)
}

func (suite *EquityTestSuite) TestMonthBaselineUsesUnfilteredTrades() {
	all := newestFirst(
		win("2024-01-10", "09:00", 1, 1000),
		loss("2024-02-10", "09:00", -300),
		win("2024-03-05", "09:00", 1, 700),
	)
	filtered := []types.Trade{all[0]}

	curve := BuildEquityCurve(filtered, all, 100000, "Mar", types.OrderNewestFirst)
	suite.Require().Len(curve, 2)
	suite.InDelta(100700.0, curve[0].Equity, 1e-9)
}

func (suite *EquityTestSuite) TestMonthAcrossYearsAnchorsOnOldestMonthTrade() {
	all := newestFirst(
		win("2023-03-07", "09:00", 1, 500),
		win("2024-01-10", "09:00", 1, 1000),
		win("2024-03-05", "09:00", 1, 700),
	)

	// The March 2023 trade anchors the month, so nothing precedes it.
	curve := BuildEquityCurve(all, all, 100000, "Mar", types.OrderNewestFirst)
	suite.Require().Len(curve, 3)
	suite.InDelta(100000.0, curve[0].Equity, 1e-9)
	suite.InDelta(100500.0, curve[1].Equity, 1e-9)
	suite.InDelta(101200.0, curve[2].Equity, 1e-9)

	reversed := newestFirst(all...)
	suite.Equal(curve, BuildEquityCurve(reversed, reversed, 100000, "Mar", types.OrderOldestFirst))
}

func (suite *EquityTestSuite) TestMonthWithoutTrades() {
	all := []types.Trade{win("2024-01-10", "09:00", 1, 1000)}

	curve := BuildEquityCurve(all, all, 100000, "Jun", types.OrderNewestFirst)
	suite.Require().Len(curve, 1)
	suite.InDelta(100000.0, curve[0].Equity, 1e-9)
}
