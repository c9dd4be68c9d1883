package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/internal/version"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"go.uber.org/zap"
)

const schemaVersionKey = "schema_version"

var tradeColumns = []string{
	"id", "date", "time", "position", "risk", "rr_ratio", "stop_loss",
	"stop_loss_type", "tags", "result", "pnl", "screenshot_url",
}

// DuckDBStore is a Store backed by a DuckDB database file.
type DuckDBStore struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

var _ Store = (*DuckDBStore)(nil)

// NewDuckDBStore opens (or creates) the journal database at path. An empty
// path or ":memory:" opens an in-memory journal. A database written by an
// incompatible journal version is refused.
func NewDuckDBStore(path string, logger *logger.Logger) (*DuckDBStore, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		logger.Error("Failed to open database", zap.String("path", path), zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to open database", err)
	}

	if err := db.Ping(); err != nil {
		logger.Error("Failed to connect to database", zap.String("path", path), zap.Error(err))
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to connect to database", err)
	}

	store := &DuckDBStore{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

// ListBacktests implements Store.
func (s *DuckDBStore) ListBacktests(ctx context.Context) ([]types.Backtest, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.sq.
		Select("id", "name", "balance", "balance_type", "folder_id").
		From("backtests").
		OrderBy("created_at ASC", "id ASC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query backtests", err)
	}
	defer rows.Close()

	backtests := []types.Backtest{}

	for rows.Next() {
		backtest, err := scanBacktest(rows)
		if err != nil {
			return nil, err
		}

		backtests = append(backtests, backtest)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating backtests", err)
	}

	return backtests, nil
}

// GetBacktest implements Store.
func (s *DuckDBStore) GetBacktest(ctx context.Context, backtestID string) (types.Backtest, error) {
	if err := s.checkOpen(); err != nil {
		return types.Backtest{}, err
	}

	row := s.sq.
		Select("id", "name", "balance", "balance_type", "folder_id").
		From("backtests").
		Where(squirrel.Eq{"id": backtestID}).
		RunWith(s.db).
		QueryRowContext(ctx)

	backtest, err := scanBacktest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Backtest{}, errors.Newf(errors.ErrCodeBacktestNotFound, "backtest %s not found", backtestID)
		}

		return types.Backtest{}, err
	}

	trades, err := s.listTrades(ctx, backtestID)
	if err != nil {
		return types.Backtest{}, err
	}

	backtest.Trades = trades

	return backtest, nil
}

// SaveBacktest implements Store.
func (s *DuckDBStore) SaveBacktest(ctx context.Context, backtest types.Backtest) (types.Backtest, error) {
	if err := s.checkOpen(); err != nil {
		return types.Backtest{}, err
	}

	if backtest.ID == "" {
		backtest.ID = uuid.New().String()
	}

	exists, err := s.backtestExists(ctx, backtest.ID)
	if err != nil {
		return types.Backtest{}, err
	}

	if exists {
		_, err = s.sq.
			Update("backtests").
			SetMap(map[string]any{
				"name":         backtest.Name,
				"balance":      backtest.Balance,
				"balance_type": string(backtest.BalanceType),
				"folder_id":    backtest.FolderID,
			}).
			Where(squirrel.Eq{"id": backtest.ID}).
			RunWith(s.db).
			ExecContext(ctx)
	} else {
		_, err = s.sq.
			Insert("backtests").
			Columns("id", "name", "balance", "balance_type", "folder_id", "created_at").
			Values(backtest.ID, backtest.Name, backtest.Balance, string(backtest.BalanceType), backtest.FolderID, time.Now().UTC()).
			RunWith(s.db).
			ExecContext(ctx)
	}

	if err != nil {
		return types.Backtest{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to save backtest %s", backtest.ID)
	}

	s.logger.Debug("Saved backtest", zap.String("backtest_id", backtest.ID), zap.Bool("created", !exists))

	return backtest, nil
}

// DeleteBacktest implements Store.
func (s *DuckDBStore) DeleteBacktest(ctx context.Context, backtestID string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransactionAbort, "failed to begin transaction", err)
	}

	for _, table := range []string{"trades", "filters"} {
		_, err = s.sq.Delete(table).Where(squirrel.Eq{"backtest_id": backtestID}).RunWith(tx).ExecContext(ctx)
		if err != nil {
			tx.Rollback()

			return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to delete %s of backtest %s", table, backtestID)
		}
	}

	result, err := s.sq.Delete("backtests").Where(squirrel.Eq{"id": backtestID}).RunWith(tx).ExecContext(ctx)
	if err != nil {
		tx.Rollback()

		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to delete backtest %s", backtestID)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		tx.Rollback()

		return errors.Newf(errors.ErrCodeBacktestNotFound, "backtest %s not found", backtestID)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeTransactionAbort, "failed to commit transaction", err)
	}

	return nil
}

// GetTrade implements Store.
func (s *DuckDBStore) GetTrade(ctx context.Context, backtestID, tradeID string) (optional.Option[types.Trade], error) {
	if err := s.checkOpen(); err != nil {
		return optional.None[types.Trade](), err
	}

	row := s.sq.
		Select(tradeColumns...).
		From("trades").
		Where(squirrel.Eq{"backtest_id": backtestID, "id": tradeID}).
		RunWith(s.db).
		QueryRowContext(ctx)

	trade, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return optional.None[types.Trade](), nil
		}

		return optional.None[types.Trade](), err
	}

	return optional.Some(trade), nil
}

// InsertTrade implements Store.
func (s *DuckDBStore) InsertTrade(ctx context.Context, backtestID string, trade types.Trade) (types.Trade, error) {
	if err := s.checkOpen(); err != nil {
		return types.Trade{}, err
	}

	exists, err := s.backtestExists(ctx, backtestID)
	if err != nil {
		return types.Trade{}, err
	}

	if !exists {
		return types.Trade{}, errors.Newf(errors.ErrCodeBacktestNotFound, "backtest %s not found", backtestID)
	}

	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}

	trade.Tags = types.JoinTags(trade.TagList()...)

	_, err = s.sq.
		Insert("trades").
		Columns(append([]string{"backtest_id"}, tradeColumns...)...).
		Values(
			backtestID, trade.ID, trade.Date, trade.Time, string(trade.Position), trade.Risk,
			trade.RRRatio, trade.StopLoss, string(trade.StopLossType), trade.Tags,
			string(trade.Result), trade.Pnl, trade.ScreenshotURL,
		).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return types.Trade{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to insert trade %s", trade.ID)
	}

	return trade, nil
}

// UpdateTrade implements Store.
func (s *DuckDBStore) UpdateTrade(ctx context.Context, backtestID string, trade types.Trade) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	result, err := s.sq.
		Update("trades").
		SetMap(map[string]any{
			"date":           trade.Date,
			"time":           trade.Time,
			"position":       string(trade.Position),
			"risk":           trade.Risk,
			"rr_ratio":       trade.RRRatio,
			"stop_loss":      trade.StopLoss,
			"stop_loss_type": string(trade.StopLossType),
			"tags":           types.JoinTags(trade.TagList()...),
			"result":         string(trade.Result),
			"pnl":            trade.Pnl,
			"screenshot_url": trade.ScreenshotURL,
		}).
		Where(squirrel.Eq{"backtest_id": backtestID, "id": trade.ID}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to update trade %s", trade.ID)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errors.Newf(errors.ErrCodeTradeNotFound, "trade %s not found in backtest %s", trade.ID, backtestID)
	}

	return nil
}

// DeleteTrade implements Store.
func (s *DuckDBStore) DeleteTrade(ctx context.Context, backtestID, tradeID string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	result, err := s.sq.
		Delete("trades").
		Where(squirrel.Eq{"backtest_id": backtestID, "id": tradeID}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to delete trade %s", tradeID)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errors.Newf(errors.ErrCodeTradeNotFound, "trade %s not found in backtest %s", tradeID, backtestID)
	}

	return nil
}

// GetFilter implements Store.
func (s *DuckDBStore) GetFilter(ctx context.Context, backtestID string) (types.FilterState, error) {
	if err := s.checkOpen(); err != nil {
		return types.FilterState{}, err
	}

	var state string

	err := s.sq.
		Select("state").
		From("filters").
		Where(squirrel.Eq{"backtest_id": backtestID}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.DefaultFilterState(), nil
		}

		return types.FilterState{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to load filter of backtest %s", backtestID)
	}

	var filter types.FilterState
	if err := json.Unmarshal([]byte(state), &filter); err != nil {
		return types.FilterState{}, errors.Wrapf(errors.ErrCodeInvalidFilter, err, "stored filter of backtest %s is corrupt", backtestID)
	}

	return filter, nil
}

// SaveFilter implements Store.
func (s *DuckDBStore) SaveFilter(ctx context.Context, backtestID string, filter types.FilterState) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	state, err := json.Marshal(filter)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFilter, "failed to marshal filter", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransactionAbort, "failed to begin transaction", err)
	}

	_, err = s.sq.Delete("filters").Where(squirrel.Eq{"backtest_id": backtestID}).RunWith(tx).ExecContext(ctx)
	if err != nil {
		tx.Rollback()

		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to replace filter of backtest %s", backtestID)
	}

	_, err = s.sq.Insert("filters").Columns("backtest_id", "state").Values(backtestID, string(state)).RunWith(tx).ExecContext(ctx)
	if err != nil {
		tx.Rollback()

		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to save filter of backtest %s", backtestID)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeTransactionAbort, "failed to commit transaction", err)
	}

	return nil
}

// Close closes the database connection.
func (s *DuckDBStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil

	return err
}

// SchemaVersion returns the journal version recorded in the database.
func (s *DuckDBStore) SchemaVersion(ctx context.Context) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}

	var value string

	err := s.sq.
		Select("value").
		From("meta").
		Where(squirrel.Eq{"key": schemaVersionKey}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&value)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeQueryFailed, "failed to read schema version", err)
	}

	return value, nil
}

func (s *DuckDBStore) checkOpen() error {
	if s == nil || s.db == nil {
		return errors.New(errors.ErrCodeStoreClosed, "journal store is closed")
	}

	return nil
}

func (s *DuckDBStore) backtestExists(ctx context.Context, backtestID string) (bool, error) {
	var count int

	err := s.sq.
		Select("COUNT(*)").
		From("backtests").
		Where(squirrel.Eq{"id": backtestID}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return false, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to look up backtest %s", backtestID)
	}

	return count > 0, nil
}

// listTrades returns the trades of a backtest newest first. Trades sharing a
// timestamp are ordered by insertion, latest first.
func (s *DuckDBStore) listTrades(ctx context.Context, backtestID string) ([]types.Trade, error) {
	rows, err := s.sq.
		Select(tradeColumns...).
		From("trades").
		Where(squirrel.Eq{"backtest_id": backtestID}).
		OrderBy("date DESC", "time DESC", "seq DESC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query trades of backtest %s", backtestID)
	}
	defer rows.Close()

	trades := []types.Trade{}

	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating trades", err)
	}

	return trades, nil
}

// initialize creates the journal tables and records or checks the schema version.
func (s *DuckDBStore) initialize() error {
	_, err := s.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS trade_seq;
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
		CREATE TABLE IF NOT EXISTS backtests (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			balance DOUBLE NOT NULL,
			balance_type TEXT NOT NULL,
			folder_id TEXT,
			created_at TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			backtest_id TEXT NOT NULL,
			seq BIGINT DEFAULT nextval('trade_seq'),
			date TEXT,
			time TEXT,
			position TEXT,
			risk DOUBLE,
			rr_ratio DOUBLE,
			stop_loss DOUBLE,
			stop_loss_type TEXT,
			tags TEXT,
			result TEXT,
			pnl DOUBLE,
			screenshot_url TEXT
		);
		CREATE TABLE IF NOT EXISTS filters (
			backtest_id TEXT NOT NULL,
			state TEXT
		);
	`)
	if err != nil {
		s.logger.Error("Failed to create journal tables", zap.Error(err))

		return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create journal tables", err)
	}

	var storedVersion string

	err = s.sq.
		Select("value").
		From("meta").
		Where(squirrel.Eq{"key": schemaVersionKey}).
		RunWith(s.db).
		QueryRow().
		Scan(&storedVersion)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.sq.
			Insert("meta").
			Columns("key", "value").
			Values(schemaVersionKey, version.Version).
			RunWith(s.db).
			Exec()
		if err != nil {
			return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to record schema version", err)
		}
	case err != nil:
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to read schema version", err)
	default:
		if err := version.CheckVersionCompatibility(version.Version, storedVersion); err != nil {
			s.logger.Error("Journal store was written by an incompatible version",
				zap.String("journal_version", version.Version),
				zap.String("store_version", storedVersion),
				zap.Error(err),
			)

			return err
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBacktest(row rowScanner) (types.Backtest, error) {
	var (
		backtest    types.Backtest
		balanceType string
		folderID    sql.NullString
	)

	err := row.Scan(&backtest.ID, &backtest.Name, &backtest.Balance, &balanceType, &folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Backtest{}, err
		}

		return types.Backtest{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan backtest", err)
	}

	backtest.BalanceType = types.BalanceType(balanceType)
	backtest.FolderID = folderID.String

	return backtest, nil
}

func scanTrade(row rowScanner) (types.Trade, error) {
	var (
		trade                          types.Trade
		position, stopLossType, result string
		tags, screenshotURL            sql.NullString
	)

	err := row.Scan(
		&trade.ID,
		&trade.Date,
		&trade.Time,
		&position,
		&trade.Risk,
		&trade.RRRatio,
		&trade.StopLoss,
		&stopLossType,
		&tags,
		&result,
		&trade.Pnl,
		&screenshotURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Trade{}, err
		}

		return types.Trade{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
	}

	trade.Position = types.Position(position)
	trade.StopLossType = types.StopLossType(stopLossType)
	trade.Result = types.TradeResult(result)
	trade.Tags = tags.String
	trade.ScreenshotURL = screenshotURL.String

	return trade, nil
}
