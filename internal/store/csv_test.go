package store

import (
	"os"
	"path/filepath"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
)

func (suite *DuckDBStoreTestSuite) writeCSV(content string) string {
	path := filepath.Join(suite.T().TempDir(), "trades.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *DuckDBStoreTestSuite) TestReadTradesCSV() {
	path := suite.writeCSV(`date,time,position,risk,rr_ratio,stop_loss,stop_loss_type,tags,result,pnl
2024-03-10,03:00,Long,1,2,15,pips,"breakout, asia",profit,2000
2024-03-11,09:30,short,0.5,1.5,0.8,percent,,loss,-500
`)

	trades, err := suite.store.ReadTradesCSV(suite.ctx, path)
	suite.Require().NoError(err)
	suite.Require().Len(trades, 2)

	suite.Equal("2024-03-10", trades[0].Date)
	suite.Equal("03:00", trades[0].Time)
	suite.Equal(types.PositionLong, trades[0].Position)
	suite.Equal("breakout, asia", trades[0].Tags)
	suite.Equal(types.TradeResultProfit, trades[0].Result)
	suite.InDelta(2000.0, trades[0].Pnl, 1e-9)
	suite.Empty(trades[0].ID)

	suite.Equal(types.StopLossTypePercent, trades[1].StopLossType)
	suite.InDelta(0.8, trades[1].StopLoss, 1e-9)
	suite.Equal("", trades[1].Tags)
	suite.NoError(trades[1].Validate())
}

func (suite *DuckDBStoreTestSuite) TestReadTradesCSVMissingColumn() {
	path := suite.writeCSV("date,time,position\n2024-03-10,03:00,long\n")

	_, err := suite.store.ReadTradesCSV(suite.ctx, path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeImportFailed))
}

func (suite *DuckDBStoreTestSuite) TestReadTradesCSVInvalidNumber() {
	path := suite.writeCSV(`date,time,position,risk,rr_ratio,stop_loss,stop_loss_type,tags,result,pnl
2024-03-10,03:00,long,1,2,15,pips,,profit,lots
`)

	_, err := suite.store.ReadTradesCSV(suite.ctx, path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidRow))
	suite.True(errors.IsFieldError(err))
	suite.Contains(err.Error(), "row 1.pnl")
}

func (suite *DuckDBStoreTestSuite) TestReadTradesCSVNonFiniteNumber() {
	path := suite.writeCSV(`date,time,position,risk,rr_ratio,stop_loss,stop_loss_type,tags,result,pnl
2024-03-10,03:00,long,1,2,15,pips,,profit,2000
2024-03-11,04:00,short,1,2,15,pips,,loss,NaN
`)

	_, err := suite.store.ReadTradesCSV(suite.ctx, path)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidRow))
	suite.True(errors.IsFieldError(err))
	suite.Contains(err.Error(), "row 2.pnl")

	path = suite.writeCSV(`date,time,position,risk,rr_ratio,stop_loss,stop_loss_type,tags,result,pnl
2024-03-10,03:00,long,Inf,2,15,pips,,profit,2000
`)

	_, err = suite.store.ReadTradesCSV(suite.ctx, path)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "row 1.risk")
}

func (suite *DuckDBStoreTestSuite) TestReadTradesCSVMissingFile() {
	_, err := suite.store.ReadTradesCSV(suite.ctx, filepath.Join(suite.T().TempDir(), "nope.csv"))
	suite.True(errors.HasCode(err, errors.ErrCodeImportFailed))
}

func (suite *DuckDBStoreTestSuite) TestExportThenReadCSV() {
	backtest := suite.createBacktest("First")

	for _, trade := range []types.Trade{
		sampleTrade("2024-03-11", "09:00", types.TradeResultProfit, 200),
		sampleTrade("2024-03-12", "08:00", types.TradeResultLoss, -100),
	} {
		_, err := suite.store.InsertTrade(suite.ctx, backtest.ID, trade)
		suite.Require().NoError(err)
	}

	path := filepath.Join(suite.T().TempDir(), "out", "trades.csv")
	suite.Require().NoError(suite.store.ExportTrades(suite.ctx, backtest.ID, path, ExportFormatCSV))

	trades, err := suite.store.ReadTradesCSV(suite.ctx, path)
	suite.Require().NoError(err)

	loaded, err := suite.store.GetBacktest(suite.ctx, backtest.ID)
	suite.Require().NoError(err)
	suite.Equal(loaded.Trades, trades)
}

func (suite *DuckDBStoreTestSuite) TestExportParquet() {
	backtest := suite.createBacktest("First")
	_, err := suite.store.InsertTrade(suite.ctx, backtest.ID, sampleTrade("2024-03-11", "09:00", types.TradeResultProfit, 200))
	suite.Require().NoError(err)

	path := filepath.Join(suite.T().TempDir(), "trades.parquet")
	suite.Require().NoError(suite.store.ExportTrades(suite.ctx, backtest.ID, path, ExportFormatParquet))

	var count int
	suite.Require().NoError(suite.store.db.QueryRow("SELECT COUNT(*) FROM read_parquet('" + path + "')").Scan(&count))
	suite.Equal(1, count)
}

func (suite *DuckDBStoreTestSuite) TestExportRejectsUnknownFormatAndBacktest() {
	backtest := suite.createBacktest("First")
	path := filepath.Join(suite.T().TempDir(), "trades.json")

	err := suite.store.ExportTrades(suite.ctx, backtest.ID, path, ExportFormat("json"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	err = suite.store.ExportTrades(suite.ctx, "missing", path, ExportFormatCSV)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestNotFound))
}

func (suite *DuckDBStoreTestSuite) TestQuoteLiteral() {
	suite.Equal(`'it''s'`, quoteLiteral("it's"))
}
