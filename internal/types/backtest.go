package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
)

type BalanceType string

const (
	BalanceTypeFixed   BalanceType = "fixed"
	BalanceTypeDynamic BalanceType = "dynamic"
)

// Backtest is a named collection of trades with a starting balance.
type Backtest struct {
	ID          string      `yaml:"id" json:"id" validate:"required"`
	Name        string      `yaml:"name" json:"name" validate:"required"`
	Balance     float64     `yaml:"balance" json:"balance" validate:"gt=0"`
	BalanceType BalanceType `yaml:"balance_type" json:"balanceType" validate:"required,oneof=fixed dynamic"`
	// Trades are kept in storage order, newest first.
	Trades   []Trade `yaml:"trades" json:"trades"`
	FolderID string  `yaml:"folder_id,omitempty" json:"folderId,omitempty"`
}

// Validate validates the backtest header and every trade it holds.
func (b *Backtest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(b); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidBacktest, "invalid backtest", err)
	}

	for i := range b.Trades {
		if err := b.Trades[i].Validate(); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidBacktest, err, "invalid trade at index %d", i)
		}
	}

	return nil
}
