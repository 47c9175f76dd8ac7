// Package mappers turns Midgard actions, Viewblock sends and TCY distributions into
// CryptoTaxCalculator rows.
package mappers

import (
	"fmt"
	"strings"
	"time"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/prices"
	"github.com/koitsu/thorchain-cryptotax/thornode"
	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/shopspring/decimal"
)

const (
	// DefaultRuneGas is 0.02 RUNE. Midgard does not report gas for native THORChain txs.
	DefaultRuneGas = "2000000"

	ThorchainLedger       = "thorchain"
	MissingDepositAddress = "MISSING-DEPOSIT-ADDRESS"

	ThorBlockchain = "THOR"
	Rune           = "RUNE"

	// IDLayout is the ISO 8601 form used as entry id prefix.
	IDLayout = "2006-01-02T15:04:05.000Z"

	linkOffset = 10 * time.Second
)

// Mapper converts one Midgard action into rows. Implementations hold no state.
type Mapper interface {
	Name() string
	ToEntries(c *Context) ([]cryptotaxcalculator.Row, error)
}

// Context carries everything a single mapping call needs. A fresh one is built per action.
type Context struct {
	Action             midgard.Action
	Date               time.Time
	AddReferencePrices bool
	ThornodeTxs        []thornode.TxStatusResponse
	Prices             prices.Oracle
}

func NewContext(action midgard.Action, addReferencePrices bool, thornodeTxs []thornode.TxStatusResponse, oracle prices.Oracle) (*Context, error) {
	date, err := assets.ParseDate(action.Date)
	if err != nil {
		return nil, err
	}

	return &Context{
		Action:             action,
		Date:               date,
		AddReferencePrices: addReferencePrices,
		ThornodeTxs:        thornodeTxs,
		Prices:             oracle,
	}, nil
}

func (c *Context) IDPrefix() string {
	return IDPrefix(c.Date)
}

func (c *Context) ID(suffix string) string {
	return c.IDPrefix() + "." + suffix
}

// At returns the action time shifted by n link offsets (10s each).
func (c *Context) At(n int) time.Time {
	return c.Date.Add(time.Duration(n) * linkOffset)
}

// ThornodeTx finds the related thornode tx by id, ignoring case.
func (c *Context) ThornodeTx(txID string) (*thornode.Tx, bool) {
	for _, status := range c.ThornodeTxs {
		if status.Tx != nil && strings.EqualFold(status.Tx.ID, txID) {
			return status.Tx, true
		}
	}
	return nil, false
}

// ReferencePrice is the USD value of quoteAmount of quoteCurrency on the action day divided by units.
func (c *Context) ReferencePrice(mapperName, units, quoteCurrency string, quoteAmount decimal.Decimal) (string, error) {
	if c.Prices == nil {
		return "", &MapperError{Mapper: mapperName, Message: "no price oracle configured"}
	}

	unitsDec, err := decimal.NewFromString(units)
	if err != nil || unitsDec.IsZero() {
		return "", &MapperError{Mapper: mapperName, Message: fmt.Sprintf("invalid liquidity units %q", units)}
	}

	price, err := c.Prices.Price(quoteCurrency, c.Date)
	if err != nil {
		return "", err
	}

	return price.Mul(quoteAmount).Div(unitsDec).String(), nil
}

func IDPrefix(t time.Time) string {
	return t.UTC().Format(IDLayout)
}

func parseCoin(coin midgard.Coin) (assets.Asset, string, error) {
	asset, err := assets.Parse(coin.Asset)
	if err != nil {
		return assets.Asset{}, "", err
	}

	amount, err := util.ToAssetAmount(coin.Amount)
	if err != nil {
		return assets.Asset{}, "", err
	}

	return asset, amount, nil
}

// firstCoin returns the first coin of a leg or a MapperError naming the leg.
func firstCoin(mapperName, leg string, tx midgard.Transaction) (midgard.Coin, error) {
	if len(tx.Coins) == 0 {
		return midgard.Coin{}, &MapperError{Mapper: mapperName, Message: fmt.Sprintf("No coins in %s", leg)}
	}
	return tx.Coins[0], nil
}

// networkFee parses the first network fee. No fees gives empty strings.
func networkFee(fees []midgard.Coin) (string, string, error) {
	if len(fees) == 0 {
		return "", "", nil
	}

	asset, amount, err := parseCoin(fees[0])
	if err != nil {
		return "", "", err
	}
	return asset.Currency, amount, nil
}

func defaultRuneFee() string {
	return util.MustToAssetAmount(DefaultRuneGas)
}

func orMissing(address string) string {
	if address == "" {
		return MissingDepositAddress
	}
	return address
}

func synthLabel(synth bool) string {
	if synth {
		return "Synth "
	}
	return ""
}

// memoField returns the colon separated field of a memo, or "" when absent.
func memoField(memo string, index int) string {
	fields := strings.Split(memo, ":")
	if index >= len(fields) {
		return ""
	}
	return fields[index]
}

func requireCount(mapperName, what string, want, got int) error {
	if got != want {
		return &InvalidInputCountError{
			Mapper:  mapperName,
			Message: fmt.Sprintf("Expected %s to be %d but was %d", what, want, got),
			Count:   got,
		}
	}
	return nil
}
