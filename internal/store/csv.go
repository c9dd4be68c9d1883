package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"go.uber.org/zap"
)

// requiredCSVColumns must be present in an imported file. id, tags and
// screenshot_url are optional.
var requiredCSVColumns = []string{
	"date", "time", "position", "risk", "rr_ratio", "stop_loss",
	"stop_loss_type", "result", "pnl",
}

// ReadTradesCSV implements Store. Every cell is read as text so that a
// malformed row is reported with its row number instead of failing the scan.
func (s *DuckDBStore) ReadTradesCSV(ctx context.Context, path string) ([]types.Trade, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeImportFailed, err, "cannot read %s", path)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT * FROM read_csv_auto(%s, header = true, all_varchar = true)`, quoteLiteral(path),
	))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeImportFailed, err, "failed to read %s", path)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImportFailed, "failed to read CSV header", err)
	}

	index := make(map[string]int, len(columns))
	for i, column := range columns {
		index[strings.ToLower(strings.TrimSpace(column))] = i
	}

	for _, column := range requiredCSVColumns {
		if _, ok := index[column]; !ok {
			return nil, errors.Newf(errors.ErrCodeImportFailed, "%s is missing the %q column", path, column)
		}
	}

	trades := []types.Trade{}
	rowNumber := 0

	for rows.Next() {
		rowNumber++

		cells := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))

		for i := range cells {
			dest[i] = &cells[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeImportFailed, err, "failed to scan row %d", rowNumber)
		}

		trade, err := parseCSVRow(rowNumber, index, cells)
		if err != nil {
			return nil, err
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeImportFailed, err, "failed to read %s", path)
	}

	s.logger.Info("Read trades from CSV", zap.String("path", path), zap.Int("trades", len(trades)))

	return trades, nil
}

// ExportTrades implements Store.
func (s *DuckDBStore) ExportTrades(ctx context.Context, backtestID string, path string, format ExportFormat) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	var options string

	switch format {
	case ExportFormatCSV:
		options = "FORMAT CSV, HEADER"
	case ExportFormatParquet:
		options = "FORMAT PARQUET"
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unsupported export format %q", format)
	}

	exists, err := s.backtestExists(ctx, backtestID)
	if err != nil {
		return err
	}

	if !exists {
		return errors.Newf(errors.ErrCodeBacktestNotFound, "backtest %s not found", backtestID)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to create export directory", err)
	}

	query := fmt.Sprintf(`
		COPY (
			SELECT %s FROM trades
			WHERE backtest_id = %s
			ORDER BY date DESC, time DESC, seq DESC
		) TO %s (%s)
	`, strings.Join(tradeColumns, ", "), quoteLiteral(backtestID), quoteLiteral(path), options)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to export trades to %s", path)
	}

	s.logger.Info("Exported trades",
		zap.String("backtest_id", backtestID),
		zap.String("path", path),
		zap.String("format", string(format)),
	)

	return nil
}

func parseCSVRow(rowNumber int, index map[string]int, cells []sql.NullString) (types.Trade, error) {
	record := fmt.Sprintf("row %d", rowNumber)

	text := func(column string) string {
		i, ok := index[column]
		if !ok || !cells[i].Valid {
			return ""
		}

		return strings.TrimSpace(cells[i].String)
	}

	number := func(column string) (float64, error) {
		raw := text(column)

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidRow, "invalid number",
				errors.NewFieldErrorf(record, column, raw, "%q is not a number", raw))
		}

		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, errors.Wrap(errors.ErrCodeInvalidRow, "invalid number",
				errors.NewFieldErrorf(record, column, raw, "%q is not a finite number", raw))
		}

		return value, nil
	}

	trade := types.Trade{
		ID:            text("id"),
		Date:          text("date"),
		Time:          text("time"),
		Position:      types.Position(strings.ToLower(text("position"))),
		StopLossType:  types.StopLossType(strings.ToLower(text("stop_loss_type"))),
		Tags:          types.JoinTags(types.ParseTags(text("tags"))...),
		Result:        types.TradeResult(strings.ToLower(text("result"))),
		ScreenshotURL: text("screenshot_url"),
	}

	var err error

	if trade.Risk, err = number("risk"); err != nil {
		return types.Trade{}, err
	}

	if trade.RRRatio, err = number("rr_ratio"); err != nil {
		return types.Trade{}, err
	}

	if trade.StopLoss, err = number("stop_loss"); err != nil {
		return types.Trade{}, err
	}

	if trade.Pnl, err = number("pnl"); err != nil {
		return types.Trade{}, err
	}

	return trade, nil
}

// quoteLiteral renders value as a SQL string literal. COPY and table
// functions do not take bind parameters.
func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
