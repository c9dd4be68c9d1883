package store

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/types"
)

// ExportFormat selects the file format of an export.
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatParquet ExportFormat = "parquet"
)

// Store persists backtests, their trades and their filter state.
type Store interface {
	// ListBacktests returns every backtest header, oldest created first.
	// Trades are not loaded.
	ListBacktests(ctx context.Context) ([]types.Backtest, error)
	// GetBacktest returns a backtest with its trades in storage order, newest first.
	GetBacktest(ctx context.Context, backtestID string) (types.Backtest, error)
	// SaveBacktest creates or updates a backtest header. An empty ID is
	// assigned a new one. Trades are ignored.
	SaveBacktest(ctx context.Context, backtest types.Backtest) (types.Backtest, error)
	// DeleteBacktest removes a backtest together with its trades and filter.
	DeleteBacktest(ctx context.Context, backtestID string) error

	// GetTrade returns None when the backtest has no trade with that id.
	GetTrade(ctx context.Context, backtestID, tradeID string) (optional.Option[types.Trade], error)
	// InsertTrade stores a new trade. An empty ID is assigned a new one.
	InsertTrade(ctx context.Context, backtestID string, trade types.Trade) (types.Trade, error)
	UpdateTrade(ctx context.Context, backtestID string, trade types.Trade) error
	DeleteTrade(ctx context.Context, backtestID, tradeID string) error

	// GetFilter returns the default filter when none was saved.
	GetFilter(ctx context.Context, backtestID string) (types.FilterState, error)
	SaveFilter(ctx context.Context, backtestID string, filter types.FilterState) error

	// ReadTradesCSV parses a CSV file into trades without storing them.
	ReadTradesCSV(ctx context.Context, path string) ([]types.Trade, error)
	// ExportTrades writes a backtest's trades to path, newest first.
	ExportTrades(ctx context.Context, backtestID string, path string, format ExportFormat) error

	Close() error
}
