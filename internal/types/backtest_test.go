package types

import (
	"testing"

	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBacktestValidate(t *testing.T) {
	backtest := Backtest{
		ID:          "bt-1",
		Name:        "London breakouts",
		Balance:     100000,
		BalanceType: BalanceTypeFixed,
		Trades:      []Trade{validTrade()},
	}
	assert.NoError(t, backtest.Validate())

	backtest.Balance = 0
	assert.True(t, errors.HasCode(backtest.Validate(), errors.ErrCodeInvalidBacktest))

	backtest.Balance = 100000
	backtest.BalanceType = "compounding"
	assert.Error(t, backtest.Validate())

	backtest.BalanceType = BalanceTypeDynamic
	backtest.Trades[0].Risk = -1
	err := backtest.Validate()
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidBacktest))
	assert.Contains(t, err.Error(), "index 0")
}
