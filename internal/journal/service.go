package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/analytics"
	"github.com/rxtech-lab/trade-journal/internal/analytics/cache"
	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/store"
	"github.com/rxtech-lab/trade-journal/internal/tracing"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/internal/version"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// maxUndoDepth bounds the undo history; the oldest entries are dropped first.
const maxUndoDepth = 50

// DefaultBacktestName names the backtest created for an empty journal.
const DefaultBacktestName = "Backtest 1"

// ImportProgress is called after every imported trade.
type ImportProgress func(done, total int)

// Service is the journal's application layer: it validates input, keeps at
// least one backtest alive, records undo history and serves memoized reports.
// Mutations are serialized.
type Service struct {
	store     store.Store
	logger    *logger.Logger
	config    Config
	cache     *cache.AnalyticsCache
	mu        sync.Mutex
	revisions map[string]uint64
	undo      []undoEntry
	now       func() time.Time
}

func NewService(store store.Store, logger *logger.Logger, config Config) *Service {
	return &Service{
		store:     store,
		logger:    logger,
		config:    config,
		cache:     cache.NewAnalyticsCache(),
		mu:        sync.Mutex{},
		revisions: make(map[string]uint64),
		undo:      []undoEntry{},
		now:       time.Now,
	}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() Config {
	return s.config
}

// CacheStats returns the report cache counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// EnsureBacktest returns the first backtest, creating the default one when
// the journal is empty.
func (s *Service) EnsureBacktest(ctx context.Context) (types.Backtest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	backtests, err := s.store.ListBacktests(ctx)
	if err != nil {
		return types.Backtest{}, err
	}

	if len(backtests) > 0 {
		return backtests[0], nil
	}

	return s.createBacktest(ctx, DefaultBacktestName, s.config.DefaultBalance, s.config.DefaultBalanceType)
}

// ListBacktests returns every backtest header.
func (s *Service) ListBacktests(ctx context.Context) ([]types.Backtest, error) {
	return s.store.ListBacktests(ctx)
}

// GetBacktest returns a backtest with its trades, newest first.
func (s *Service) GetBacktest(ctx context.Context, backtestID string) (types.Backtest, error) {
	return s.store.GetBacktest(ctx, backtestID)
}

// CreateBacktest creates an empty backtest. A zero balance or empty balance
// type falls back to the configured defaults.
func (s *Service) CreateBacktest(ctx context.Context, name string, balance float64, balanceType types.BalanceType) (types.Backtest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if balance == 0 {
		balance = s.config.DefaultBalance
	}

	if balanceType == "" {
		balanceType = s.config.DefaultBalanceType
	}

	return s.createBacktest(ctx, name, balance, balanceType)
}

// RenameBacktest changes the name of a backtest.
func (s *Service) RenameBacktest(ctx context.Context, backtestID, name string) (types.Backtest, error) {
	return s.updateBacktest(ctx, backtestID, func(b *types.Backtest) { b.Name = strings.TrimSpace(name) })
}

// SetBalance changes the starting balance and balance type of a backtest.
func (s *Service) SetBalance(ctx context.Context, backtestID string, balance float64, balanceType types.BalanceType) (types.Backtest, error) {
	return s.updateBacktest(ctx, backtestID, func(b *types.Backtest) {
		b.Balance = balance
		b.BalanceType = balanceType
	})
}

// DeleteBacktest removes a backtest. The last remaining backtest cannot be
// deleted. Undo history of the backtest is discarded.
func (s *Service) DeleteBacktest(ctx context.Context, backtestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backtests, err := s.store.ListBacktests(ctx)
	if err != nil {
		return err
	}

	if len(backtests) <= 1 {
		return errors.New(errors.ErrCodeLastBacktest, "cannot delete the last backtest")
	}

	if err := s.store.DeleteBacktest(ctx, backtestID); err != nil {
		return err
	}

	kept := s.undo[:0]
	for _, entry := range s.undo {
		if entry.backtestID != backtestID {
			kept = append(kept, entry)
		}
	}

	s.undo = kept
	s.cache.Invalidate(backtestID)
	delete(s.revisions, backtestID)

	s.logger.Info("Deleted backtest", zap.String("backtest_id", backtestID))

	return nil
}

// AddTrade validates and stores a new trade.
func (s *Service) AddTrade(ctx context.Context, backtestID string, trade types.Trade) (types.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trade.ID = ""
	trade.Tags = types.JoinTags(trade.TagList()...)

	if err := trade.Validate(); err != nil {
		return types.Trade{}, err
	}

	inserted, err := s.store.InsertTrade(ctx, backtestID, trade)
	if err != nil {
		return types.Trade{}, err
	}

	s.pushUndo(undoEntry{
		kind:       mutationTradeAdded,
		backtestID: backtestID,
		before:     optional.None[types.Trade](),
		after:      optional.Some(inserted),
	})
	s.bump(backtestID)

	s.logger.Info("Added trade",
		zap.String("backtest_id", backtestID),
		zap.String("trade_id", inserted.ID),
		zap.String("result", string(inserted.Result)),
	)

	return inserted, nil
}

// EditTrade replaces a stored trade, matched by ID.
func (s *Service) EditTrade(ctx context.Context, backtestID string, trade types.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trade.Tags = types.JoinTags(trade.TagList()...)

	if err := trade.Validate(); err != nil {
		return err
	}

	previous, err := s.existingTrade(ctx, backtestID, trade.ID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateTrade(ctx, backtestID, trade); err != nil {
		return err
	}

	s.pushUndo(undoEntry{
		kind:       mutationTradeEdited,
		backtestID: backtestID,
		before:     optional.Some(previous),
		after:      optional.Some(trade),
	})
	s.bump(backtestID)

	s.logger.Info("Edited trade", zap.String("backtest_id", backtestID), zap.String("trade_id", trade.ID))

	return nil
}

// DeleteTrade removes a stored trade.
func (s *Service) DeleteTrade(ctx context.Context, backtestID, tradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.existingTrade(ctx, backtestID, tradeID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTrade(ctx, backtestID, tradeID); err != nil {
		return err
	}

	s.pushUndo(undoEntry{
		kind:       mutationTradeDeleted,
		backtestID: backtestID,
		before:     optional.Some(previous),
		after:      optional.None[types.Trade](),
	})
	s.bump(backtestID)

	s.logger.Info("Deleted trade", zap.String("backtest_id", backtestID), zap.String("trade_id", tradeID))

	return nil
}

// ImportTrades reads a CSV file and adds its trades to a backtest. Every row
// is validated before anything is stored; imported trades get fresh IDs.
// The whole import is undone as one step.
func (s *Service) ImportTrades(ctx context.Context, backtestID, path string, progress ImportProgress) (_ []types.Trade, err error) {
	ctx, span := tracing.StartSpan(ctx, "journal.ImportTrades", trace.WithAttributes(
		attribute.String("backtest_id", backtestID),
		attribute.String("path", path),
	))
	defer func() {
		_ = tracing.RecordError(span, err)
		span.End()
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetBacktest(ctx, backtestID); err != nil {
		return nil, err
	}

	trades, err := s.store.ReadTradesCSV(ctx, path)
	if err != nil {
		return nil, err
	}

	for i := range trades {
		trades[i].ID = ""
		if err := trades[i].Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRow, fmt.Sprintf("invalid trade in row %d", i+1), err)
		}
	}

	inserted := make([]types.Trade, 0, len(trades))

	for i, trade := range trades {
		stored, err := s.store.InsertTrade(ctx, backtestID, trade)
		if err != nil {
			s.rollbackImport(ctx, backtestID, inserted)

			return nil, errors.Wrapf(errors.ErrCodeImportFailed, err, "failed to import row %d", i+1)
		}

		inserted = append(inserted, stored)

		if progress != nil {
			progress(i+1, len(trades))
		}
	}

	if len(inserted) > 0 {
		s.pushUndo(undoEntry{
			kind:       mutationTradesImported,
			backtestID: backtestID,
			before:     optional.None[types.Trade](),
			after:      optional.None[types.Trade](),
			imported:   inserted,
		})
		s.bump(backtestID)
	}

	s.logger.Info("Imported trades",
		zap.String("backtest_id", backtestID),
		zap.String("path", path),
		zap.Int("trades", len(inserted)),
	)

	return inserted, nil
}

// ExportTrades writes a backtest's trades into the export directory and
// returns the file path.
func (s *Service) ExportTrades(ctx context.Context, backtestID string, format store.ExportFormat) (string, error) {
	path := filepath.Join(s.config.ExportDir, fmt.Sprintf("%s.%s", backtestID, format))

	ctx, span := tracing.StartSpan(ctx, "journal.ExportTrades", trace.WithAttributes(
		attribute.String("backtest_id", backtestID),
		attribute.String("format", string(format)),
	))
	defer span.End()

	if err := s.store.ExportTrades(ctx, backtestID, path, format); err != nil {
		return "", tracing.RecordError(span, err)
	}

	return path, nil
}

// GetFilter returns the saved filter of a backtest.
func (s *Service) GetFilter(ctx context.Context, backtestID string) (types.FilterState, error) {
	return s.store.GetFilter(ctx, backtestID)
}

// SetFilter validates and saves the filter of a backtest.
func (s *Service) SetFilter(ctx context.Context, backtestID string, filter types.FilterState) error {
	if err := filter.Validate(); err != nil {
		return err
	}

	if _, err := s.store.GetBacktest(ctx, backtestID); err != nil {
		return err
	}

	return s.store.SaveFilter(ctx, backtestID, filter)
}

// Report computes the analytics report of a backtest under its saved filter.
// Trades outside the configured From/To window are left out entirely.
func (s *Service) Report(ctx context.Context, backtestID string) (types.Report, error) {
	ctx, span := tracing.StartSpan(ctx, "journal.Report", trace.WithAttributes(attribute.String("backtest_id", backtestID)))
	defer span.End()

	// the key is taken before the read, so a concurrent mutation can only
	// file fresh trades under an outdated revision
	key := s.listKey(backtestID)

	backtest, err := s.store.GetBacktest(ctx, backtestID)
	if err != nil {
		return types.Report{}, tracing.RecordError(span, err)
	}

	filter, err := s.store.GetFilter(ctx, backtestID)
	if err != nil {
		return types.Report{}, tracing.RecordError(span, err)
	}

	backtest.Trades = s.inWindow(backtest.Trades)

	report := s.cache.Report(key, filter, func() types.Report {
		filtered := s.cache.Filtered(key, filter, func() cache.FilteredTrades {
			return cache.FilteredTrades{
				Trades: analytics.FilterTrades(backtest.Trades, filter),
				Order:  analytics.FilterOutputOrder(types.OrderNewestFirst, filter),
			}
		})
		stopLoss := s.cache.StopLoss(key, func() []types.StopRangeBucket {
			return analytics.BucketizeStopLoss(backtest.Trades)
		})
		originTarget := s.cache.OriginTarget(key, func() float64 {
			return analytics.OriginTarget(backtest.Trades, backtest.Balance, types.OrderNewestFirst)
		})

		return analytics.AssembleReport(backtest, filter, filtered.Trades, filtered.Order, stopLoss, originTarget)
	})

	report.GeneratedAt = s.now().UTC()
	report.Version = version.GetVersion()

	span.SetAttributes(
		attribute.Int("trades", len(backtest.Trades)),
		attribute.Int("filtered_trades", report.FilteredTrades),
	)

	return report, nil
}

// CanUndo reports whether there is a mutation to undo.
func (s *Service) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.undo) > 0
}

// Undo reverts the most recent trade mutation and describes what it reverted.
func (s *Service) Undo(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return "", errors.New(errors.ErrCodeNothingToUndo, "nothing to undo")
	}

	entry := s.undo[len(s.undo)-1]

	if err := entry.revert(ctx, s.store); err != nil {
		return "", err
	}

	s.undo = s.undo[:len(s.undo)-1]
	s.bump(entry.backtestID)

	description := entry.describe()
	s.logger.Info("Undid mutation", zap.String("backtest_id", entry.backtestID), zap.String("mutation", description))

	return description, nil
}

func (s *Service) createBacktest(ctx context.Context, name string, balance float64, balanceType types.BalanceType) (types.Backtest, error) {
	backtest := types.Backtest{
		ID:          "pending",
		Name:        strings.TrimSpace(name),
		Balance:     balance,
		BalanceType: balanceType,
	}

	if err := backtest.Validate(); err != nil {
		return types.Backtest{}, err
	}

	backtest.ID = ""

	created, err := s.store.SaveBacktest(ctx, backtest)
	if err != nil {
		return types.Backtest{}, err
	}

	s.logger.Info("Created backtest",
		zap.String("backtest_id", created.ID),
		zap.String("name", created.Name),
		zap.Float64("balance", created.Balance),
	)

	return created, nil
}

func (s *Service) updateBacktest(ctx context.Context, backtestID string, update func(*types.Backtest)) (types.Backtest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	backtest, err := s.store.GetBacktest(ctx, backtestID)
	if err != nil {
		return types.Backtest{}, err
	}

	update(&backtest)

	if err := backtest.Validate(); err != nil {
		return types.Backtest{}, err
	}

	saved, err := s.store.SaveBacktest(ctx, backtest)
	if err != nil {
		return types.Backtest{}, err
	}

	s.bump(backtestID)

	return saved, nil
}

func (s *Service) existingTrade(ctx context.Context, backtestID, tradeID string) (types.Trade, error) {
	found, err := s.store.GetTrade(ctx, backtestID, tradeID)
	if err != nil {
		return types.Trade{}, err
	}

	if found.IsNone() {
		return types.Trade{}, errors.Newf(errors.ErrCodeTradeNotFound, "trade %s not found in backtest %s", tradeID, backtestID)
	}

	return found.Unwrap(), nil
}

func (s *Service) rollbackImport(ctx context.Context, backtestID string, inserted []types.Trade) {
	for _, trade := range inserted {
		if err := s.store.DeleteTrade(ctx, backtestID, trade.ID); err != nil {
			s.logger.Warn("Failed to roll back imported trade",
				zap.String("backtest_id", backtestID),
				zap.String("trade_id", trade.ID),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) pushUndo(entry undoEntry) {
	s.undo = append(s.undo, entry)
	if len(s.undo) > maxUndoDepth {
		s.undo = s.undo[len(s.undo)-maxUndoDepth:]
	}
}

// bump marks the trade list of a backtest as changed. Callers hold s.mu.
func (s *Service) bump(backtestID string) {
	s.revisions[backtestID]++
}

func (s *Service) listKey(backtestID string) cache.TradeListKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cache.TradeListKey{BacktestID: backtestID, Revision: s.revisions[backtestID]}
}

func (s *Service) inWindow(trades []types.Trade) []types.Trade {
	if s.config.From.IsNone() && s.config.To.IsNone() {
		return trades
	}

	result := make([]types.Trade, 0, len(trades))

	for _, t := range trades {
		if s.config.InWindow(t.Date) {
			result = append(result, t)
		}
	}

	return result
}
