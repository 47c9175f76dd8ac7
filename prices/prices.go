// Package prices looks up daily USD closing prices used for LP reference prices.
package prices

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/shopspring/decimal"
)

// DateLayout is the dd-MM-yyyy key of the price tables.
const DateLayout = "02-01-2006"

const (
	SourceTable    = "table"
	SourceCoinbase = "coinbase"
)

type Oracle interface {
	Price(coin string, date time.Time) (decimal.Decimal, error)
}

type NoPricesError struct {
	Coin string
}

func (e *NoPricesError) Error() string {
	return fmt.Sprintf("no prices for %s", e.Coin)
}

type PriceNotFoundError struct {
	Coin string
	Date string
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("price not found for %s on %s", e.Coin, e.Date)
}

func dayKey(date time.Time) string {
	return date.UTC().Format(DateLayout)
}

// NewOracle builds the configured backend wrapped in a Memo.
func NewOracle(conf config.Prices) (Oracle, error) {
	switch conf.Source {
	case SourceCoinbase:
		return NewMemo(NewCoinbaseOracle(nil)), nil
	case SourceTable, "":
		table, err := LoadTableOracle(conf.Dir)
		if os.IsNotExist(err) {
			config.Log.Warnf("Price data directory %s not found, run update-prices. Reference prices will fail.", conf.Dir)
			table = NewTableOracle(nil)
		} else if err != nil {
			return nil, err
		}
		return NewMemo(table), nil
	}
	return nil, errors.New("unknown price source: " + conf.Source)
}
