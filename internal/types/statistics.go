package types

import (
	"fmt"
	"os"
	"time"

	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PositionStats is the long or short half of the scorecard.
type PositionStats struct {
	// Count of trades in this direction.
	Trades int `yaml:"trades" json:"trades"`
	// Count of profitable trades in this direction.
	Wins int `yaml:"wins" json:"wins"`
	// Win rate in percent, 0 when there are no trades.
	WinRate float64 `yaml:"win_rate" json:"winRate"`
	// Sum of pnl in this direction.
	Pnl float64 `yaml:"pnl" json:"pnl"`
}

// StatsSummary is the aggregate scorecard of a trade list.
type StatsSummary struct {
	// Count of all trades, riskfree included.
	TotalTrades int `yaml:"total_trades" json:"totalTrades"`
	// Count of trades with result == profit.
	Wins int `yaml:"wins" json:"wins"`
	// Count of trades with result == loss.
	Losses int `yaml:"losses" json:"losses"`
	// Win rate in percent of all trades.
	WinRate float64 `yaml:"win_rate" json:"winRate"`
	// Sum of all pnl.
	TotalPnl float64 `yaml:"total_pnl" json:"totalPnl"`
	// TotalPnl relative to the initial balance, in percent.
	TotalPnlPercent float64 `yaml:"total_pnl_percent" json:"totalPnlPercent"`
	// Mean pnl of winning trades.
	AvgWin float64 `yaml:"avg_win" json:"avgWin"`
	// Mean absolute pnl of losing trades.
	AvgLoss float64 `yaml:"avg_loss" json:"avgLoss"`
	// Average currency outcome per trade.
	Expectancy float64 `yaml:"expectancy" json:"expectancy"`
	// Sum of winning R divided by all trades.
	AverageRR float64 `yaml:"average_rr" json:"averageRR"`
	// Winning R per losing trade. See ProfitFactorUnbounded.
	ProfitFactor float64 `yaml:"profit_factor" json:"profitFactor"`
	// ProfitFactorUnbounded is set when there are wins and no losses. ProfitFactor
	// then holds the summed winning R.
	ProfitFactorUnbounded bool `yaml:"profit_factor_unbounded" json:"profitFactorUnbounded"`
	// Largest R recovery from the worst cumulative R drawdown.
	RecoveryFactor float64 `yaml:"recovery_factor" json:"recoveryFactor"`
	// Long trades.
	Long PositionStats `yaml:"long" json:"long"`
	// Short trades.
	Short PositionStats `yaml:"short" json:"short"`
	// Largest peak-to-trough equity decline, in percent of the peak.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"maxDrawdown"`
	// Highest equity reached above the initial balance, in percent.
	PeakProfit float64 `yaml:"peak_profit" json:"peakProfit"`
}

// EquityPoint is one step of the equity curve.
type EquityPoint struct {
	Index  int     `yaml:"index" json:"index"`
	Equity float64 `yaml:"equity" json:"equity"`
	// DrawdownLine is the start balance while equity is below it, nil otherwise.
	DrawdownLine *float64 `yaml:"drawdown_line" json:"drawdownLine"`
	// RunningMaxDrawdownPercent is the deepest decline below the start balance so far.
	RunningMaxDrawdownPercent float64 `yaml:"running_max_drawdown_percent" json:"runningMaxDrawdownPercent"`
}

// MonthlyRecord is the scorecard of one calendar month label.
type MonthlyRecord struct {
	// Month is the abbreviated month name, "Jan".."Dec". Years are merged.
	Month   string  `yaml:"month" json:"month"`
	Trades  int     `yaml:"trades" json:"trades"`
	Wins    int     `yaml:"wins" json:"wins"`
	Losses  int     `yaml:"losses" json:"losses"`
	WinRate float64 `yaml:"win_rate" json:"winRate"`
	// Sum of pnl of the month.
	TotalPnl float64 `yaml:"total_pnl" json:"totalPnl"`
	// TotalPnl relative to the backtest's initial balance, in percent.
	PnlPercent float64 `yaml:"pnl_percent" json:"pnlPercent"`
	// Initial balance plus net pnl of all trades dated before the month.
	MonthStartBalance float64 `yaml:"month_start_balance" json:"monthStartBalance"`
	// R-based profit factor of the month.
	ProfitFactor          float64 `yaml:"profit_factor" json:"profitFactor"`
	ProfitFactorUnbounded bool    `yaml:"profit_factor_unbounded" json:"profitFactorUnbounded"`
	// Largest equity gain over the month start balance, in percent of it.
	PeakTargetPercent float64 `yaml:"peak_target_percent" json:"peakTargetPercent"`
	// Largest equity gain over the month start balance, in percent of the initial balance.
	PeakProfitPercent float64 `yaml:"peak_profit_percent" json:"peakProfitPercent"`
	// Deepest dip below the month start balance, in percent of the initial balance.
	ReportMaxDrawdownPercent float64 `yaml:"report_max_drawdown_percent" json:"reportMaxDrawdownPercent"`
	// Deepest dip below the month start balance, in percent of the month start balance.
	PeakCardDrawdownPercent float64 `yaml:"peak_card_drawdown_percent" json:"peakCardDrawdownPercent"`
}

// StopRangeBucket is one of the five stop-loss ranges.
type StopRangeBucket struct {
	// RangeStart is inclusive.
	RangeStart float64 `yaml:"range_start" json:"rangeStart"`
	// RangeEnd is exclusive except for the last bucket.
	RangeEnd   float64 `yaml:"range_end" json:"rangeEnd"`
	Trades     int     `yaml:"trades" json:"trades"`
	WinRate    float64 `yaml:"win_rate" json:"winRate"`
	Expectancy float64 `yaml:"expectancy" json:"expectancy"`
	AvgStop    float64 `yaml:"avg_stop" json:"avgStop"`
	TotalPnl   float64 `yaml:"total_pnl" json:"totalPnl"`
	// ProfitPerDay is TotalPnl / Trades. The name is kept from the journal UI.
	ProfitPerDay float64 `yaml:"profit_per_day" json:"profitPerDay"`
}

// DailyCountRecord scores the days that had at least Limit trades.
type DailyCountRecord struct {
	Limit   int     `yaml:"limit" json:"limit"`
	Days    int     `yaml:"days" json:"days"`
	Trades  int     `yaml:"trades" json:"trades"`
	Wins    int     `yaml:"wins" json:"wins"`
	Losses  int     `yaml:"losses" json:"losses"`
	WinRate float64 `yaml:"win_rate" json:"winRate"`
}

// Report bundles every analytics output for one backtest and filter.
type Report struct {
	BacktestID     string             `yaml:"backtest_id" json:"backtestId"`
	BacktestName   string             `yaml:"backtest_name" json:"backtestName"`
	GeneratedAt    time.Time          `yaml:"generated_at" json:"generatedAt"`
	Version        string             `yaml:"version" json:"version"`
	InitialBalance float64            `yaml:"initial_balance" json:"initialBalance"`
	Filter         FilterState        `yaml:"filter" json:"filter"`
	FilteredTrades int                `yaml:"filtered_trades" json:"filteredTrades"`
	Stats          StatsSummary       `yaml:"stats" json:"stats"`
	EquityCurve    []EquityPoint      `yaml:"equity_curve" json:"equityCurve"`
	Monthly        []MonthlyRecord    `yaml:"monthly" json:"monthly"`
	OriginTarget   float64            `yaml:"origin_target" json:"originTarget"`
	StopLoss       []StopRangeBucket  `yaml:"stop_loss" json:"stopLoss"`
	DailyCounts    []DailyCountRecord `yaml:"daily_counts" json:"dailyCounts"`
}

// WriteReport writes the report to path as YAML.
func WriteReport(path string, report Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportFailed, "failed to marshal report to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, fmt.Sprintf("failed to write report to %s", path), err)
	}

	return nil
}
