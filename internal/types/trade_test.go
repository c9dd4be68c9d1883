package types

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func validTrade() Trade {
	return Trade{
		ID:           "t-1",
		Date:         "2024-03-10",
		Time:         "03:00",
		Position:     PositionLong,
		Risk:         1,
		RRRatio:      2,
		StopLoss:     0.5,
		StopLossType: StopLossTypePercent,
		Tags:         "breakout, asia",
		Result:       TradeResultProfit,
		Pnl:          2000,
	}
}

func (suite *TradeTestSuite) TestValidate() {
	tests := []struct {
		name         string
		mutate       func(t *Trade)
		expectedCode errors.ErrorCode
		shouldError  bool
	}{
		{
			name:   "valid trade",
			mutate: func(t *Trade) {},
		},
		{
			name:         "bad date",
			mutate:       func(t *Trade) { t.Date = "10/03/2024" },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "missing time",
			mutate:       func(t *Trade) { t.Time = "" },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "unknown position",
			mutate:       func(t *Trade) { t.Position = "sideways" },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "zero risk",
			mutate:       func(t *Trade) { t.Risk = 0 },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "bad screenshot url",
			mutate:       func(t *Trade) { t.ScreenshotURL = "not a url" },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "profit with negative pnl",
			mutate:       func(t *Trade) { t.Pnl = -5 },
			expectedCode: errors.ErrCodeInvalidPnlSign,
			shouldError:  true,
		},
		{
			name: "loss with positive pnl",
			mutate: func(t *Trade) {
				t.Result = TradeResultLoss
				t.Pnl = 5
			},
			expectedCode: errors.ErrCodeInvalidPnlSign,
			shouldError:  true,
		},
		{
			name: "riskfree with pnl",
			mutate: func(t *Trade) {
				t.Result = TradeResultRiskFree
				t.Pnl = 1
			},
			expectedCode: errors.ErrCodeInvalidPnlSign,
			shouldError:  true,
		},
		{
			name: "loss with NaN pnl",
			mutate: func(t *Trade) {
				t.Result = TradeResultLoss
				t.Pnl = math.NaN()
			},
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name: "loss with -Inf pnl",
			mutate: func(t *Trade) {
				t.Result = TradeResultLoss
				t.Pnl = math.Inf(-1)
			},
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "profit with +Inf pnl",
			mutate:       func(t *Trade) { t.Pnl = math.Inf(1) },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "infinite risk",
			mutate:       func(t *Trade) { t.Risk = math.Inf(1) },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "NaN rr ratio",
			mutate:       func(t *Trade) { t.RRRatio = math.NaN() },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name:         "infinite stop loss",
			mutate:       func(t *Trade) { t.StopLoss = math.Inf(1) },
			expectedCode: errors.ErrCodeInvalidTrade,
			shouldError:  true,
		},
		{
			name: "riskfree with zero pnl",
			mutate: func(t *Trade) {
				t.Result = TradeResultRiskFree
				t.Pnl = 0
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			trade := validTrade()
			tt.mutate(&trade)

			err := trade.Validate()
			if tt.shouldError {
				suite.Error(err)
				suite.True(errors.HasCode(err, tt.expectedCode), "got %v", err)
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *TradeTestSuite) TestPnlSignErrorCarriesField() {
	trade := validTrade()
	trade.Pnl = -1

	err := trade.Validate()
	suite.True(errors.IsFieldError(err))
}

func (suite *TradeTestSuite) TestNonFinitePnlErrorCarriesField() {
	trade := validTrade()
	trade.Result = TradeResultLoss
	trade.Pnl = math.NaN()

	err := trade.Validate()
	suite.True(errors.IsFieldError(err))
	suite.Contains(err.Error(), "t-1.pnl")
}

func (suite *TradeTestSuite) TestCalendarHelpers() {
	trade := validTrade()

	suite.Equal(3, trade.Hour())
	suite.Equal(0, trade.Weekday()) // 2024-03-10 is a Sunday
	suite.Equal(time.March, trade.Month())
	suite.Equal("Mar", trade.MonthLabel())
	suite.Equal("2024-03-01", trade.MonthStart())
}

func (suite *TradeTestSuite) TestMalformedCalendarFields() {
	trade := Trade{Date: "bogus", Time: "xx:10"}

	suite.Equal(0, trade.Hour())
	suite.Equal(-1, trade.Weekday())
	suite.Equal("", trade.MonthLabel())
}

func (suite *TradeTestSuite) TestParseTags() {
	suite.Nil(ParseTags(""))
	suite.Nil(ParseTags("   "))
	suite.Equal([]string{"a", "b c", "d"}, ParseTags(" a ,b c,, d "))
}

func (suite *TradeTestSuite) TestJoinTags() {
	suite.Equal("a, b", JoinTags("a", " b", "a", ""))
	suite.Equal("", JoinTags())
}

func (suite *TradeTestSuite) TestResultHelpers() {
	win := validTrade()
	suite.True(win.IsWin())
	suite.False(win.IsLoss())

	loss := validTrade()
	loss.Result = TradeResultLoss
	suite.True(loss.IsLoss())
	suite.False(loss.IsWin())
}
