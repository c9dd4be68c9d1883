package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/trade-journal/internal/types"
)

func keyValue(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value)
}

// renderSummary renders the scorecard block of a report.
func renderSummary(report types.Report) string {
	stats := report.Stats

	profitFactor := fmt.Sprintf("%.2f", stats.ProfitFactor)
	if stats.ProfitFactorUnbounded {
		profitFactor = "∞ (" + profitFactor + "R)"
	}

	lines := []string{
		TitleStyle.Render(fmt.Sprintf("%s (%s)", report.BacktestName, report.BacktestID)),
		keyValue("Initial balance", fmt.Sprintf("%.2f", report.InitialBalance)),
		keyValue("Trades", fmt.Sprintf("%d", report.FilteredTrades)),
		keyValue("Wins / losses", fmt.Sprintf("%d / %d", stats.Wins, stats.Losses)),
		keyValue("Win rate", FormatPercent(stats.WinRate)),
		keyValue("Total pnl", FormatPnl(stats.TotalPnl)+" ("+FormatPercent(stats.TotalPnlPercent)+")"),
		keyValue("Avg win / loss", fmt.Sprintf("%.2f / %.2f", stats.AvgWin, stats.AvgLoss)),
		keyValue("Expectancy", FormatPnl(stats.Expectancy)),
		keyValue("Average RR", fmt.Sprintf("%.2f", stats.AverageRR)),
		keyValue("Profit factor", profitFactor),
		keyValue("Recovery factor", fmt.Sprintf("%.2f", stats.RecoveryFactor)),
		keyValue("Max drawdown", FormatPercent(stats.MaxDrawdown)),
		keyValue("Peak profit", FormatPercent(stats.PeakProfit)),
		keyValue("Long", fmt.Sprintf("%d trades, %s win rate, %s", stats.Long.Trades, FormatPercent(stats.Long.WinRate), FormatPnl(stats.Long.Pnl))),
		keyValue("Short", fmt.Sprintf("%d trades, %s win rate, %s", stats.Short.Trades, FormatPercent(stats.Short.WinRate), FormatPnl(stats.Short.Pnl))),
		keyValue("Origin target", fmt.Sprintf("%.2f", report.OriginTarget)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMonthly(records []types.MonthlyRecord) string {
	if len(records) == 0 {
		return ""
	}

	rows := []string{TitleStyle.Render("Monthly")}
	for _, r := range records {
		rows = append(rows, fmt.Sprintf("%-4s %4d trades  %7s  %s  start %.2f  peak %s  dd %s",
			r.Month, r.Trades, FormatPercent(r.WinRate), FormatPnl(r.TotalPnl), r.MonthStartBalance,
			FormatPercent(r.PeakTargetPercent), FormatPercent(r.PeakCardDrawdownPercent)))
	}

	return SectionStyle.Render(strings.Join(rows, "\n"))
}

func renderStopLoss(buckets []types.StopRangeBucket) string {
	if len(buckets) == 0 {
		return ""
	}

	rows := []string{TitleStyle.Render("Stop loss")}
	for _, b := range buckets {
		rows = append(rows, fmt.Sprintf("%8.2f - %-8.2f %4d trades  %7s  exp %s  total %s",
			b.RangeStart, b.RangeEnd, b.Trades, FormatPercent(b.WinRate), FormatPnl(b.Expectancy), FormatPnl(b.TotalPnl)))
	}

	return SectionStyle.Render(strings.Join(rows, "\n"))
}

func renderDailyCounts(records []types.DailyCountRecord) string {
	if len(records) == 0 {
		return ""
	}

	rows := []string{TitleStyle.Render("Trades per day")}
	for _, r := range records {
		rows = append(rows, fmt.Sprintf(">= %d: %d days, %d trades, %s win rate", r.Limit, r.Days, r.Trades, FormatPercent(r.WinRate)))
	}

	return SectionStyle.Render(strings.Join(rows, "\n"))
}

// renderReport writes the full report to w.
func renderReport(w io.Writer, report types.Report) error {
	sections := []string{renderSummary(report)}

	for _, section := range []string{
		renderMonthly(report.Monthly),
		renderStopLoss(report.StopLoss),
		renderDailyCounts(report.DailyCounts),
	} {
		if section != "" {
			sections = append(sections, section)
		}
	}

	if len(report.EquityCurve) > 0 {
		last := report.EquityCurve[len(report.EquityCurve)-1]
		sections = append(sections, SectionStyle.Render(keyValue("Final equity", fmt.Sprintf("%.2f", last.Equity))))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, sections...))

	return err
}

// renderTrades writes one line per trade.
func renderTrades(w io.Writer, trades []types.Trade) error {
	if len(trades) == 0 {
		_, err := fmt.Fprintln(w, HelpStyle.Render("no trades"))
		return err
	}

	for _, t := range trades {
		line := fmt.Sprintf("%s  %s %s  %-5s  risk %.2f  rr %.2f  sl %.2f %s  %-8s %s",
			t.ID, t.Date, t.Time, t.Position, t.Risk, t.RRRatio, t.StopLoss, t.StopLossType, t.Result, FormatPnl(t.Pnl))
		if t.Tags != "" {
			line += HelpStyle.Render("  [" + t.Tags + "]")
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
