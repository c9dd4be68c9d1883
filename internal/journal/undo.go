package journal

import (
	"context"
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/store"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
)

type mutationKind string

const (
	mutationTradeAdded     mutationKind = "add trade"
	mutationTradeEdited    mutationKind = "edit trade"
	mutationTradeDeleted   mutationKind = "delete trade"
	mutationTradesImported mutationKind = "import trades"
)

// undoEntry records one trade mutation with the trade before and after it.
type undoEntry struct {
	kind       mutationKind
	backtestID string
	before     optional.Option[types.Trade]
	after      optional.Option[types.Trade]
	imported   []types.Trade
}

// revert applies the inverse of the mutation.
func (e undoEntry) revert(ctx context.Context, s store.Store) error {
	switch e.kind {
	case mutationTradeAdded:
		return s.DeleteTrade(ctx, e.backtestID, e.after.Unwrap().ID)
	case mutationTradeEdited:
		return s.UpdateTrade(ctx, e.backtestID, e.before.Unwrap())
	case mutationTradeDeleted:
		_, err := s.InsertTrade(ctx, e.backtestID, e.before.Unwrap())
		return err
	case mutationTradesImported:
		// newest first, so a partial failure leaves the oldest rows in place
		for i := len(e.imported) - 1; i >= 0; i-- {
			err := s.DeleteTrade(ctx, e.backtestID, e.imported[i].ID)
			if err != nil && !errors.HasCode(err, errors.ErrCodeTradeNotFound) {
				return err
			}
		}

		return nil
	default:
		return errors.Newf(errors.ErrCodeUnknown, "unknown mutation %q", e.kind)
	}
}

func (e undoEntry) describe() string {
	switch e.kind {
	case mutationTradesImported:
		return fmt.Sprintf("%s (%d trades)", e.kind, len(e.imported))
	case mutationTradeAdded:
		return fmt.Sprintf("%s %s", e.kind, e.after.Unwrap().ID)
	default:
		return fmt.Sprintf("%s %s", e.kind, e.before.Unwrap().ID)
	}
}
