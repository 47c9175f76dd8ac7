package mappers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/util"
)

// TcyDistributionDate converts the unix seconds of a distribution item.
func TcyDistributionDate(item midgard.TcyDistributionItem) (time.Time, error) {
	seconds, err := strconv.ParseInt(item.Date, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid distribution date %q: %w", item.Date, err)
	}
	return time.Unix(seconds, 0).UTC(), nil
}

// TcyDistributionToEntries maps one RUNE payout of TCY staking, priced with the USD price Midgard reports.
func TcyDistributionToEntries(item midgard.TcyDistributionItem, wallet string) ([]cryptotaxcalculator.Row, error) {
	date, err := TcyDistributionDate(item)
	if err != nil {
		return nil, err
	}
	amount, err := util.ToAssetAmount(item.Amount)
	if err != nil {
		return nil, err
	}
	price, err := util.ToAssetAmount(item.Price)
	if err != nil {
		return nil, err
	}

	return []cryptotaxcalculator.Row{{
		WalletExchange:         wallet,
		Date:                   date,
		Type:                   cryptotaxcalculator.Staking,
		BaseCurrency:           Rune,
		BaseAmount:             amount,
		From:                   ThorchainLedger,
		To:                     wallet,
		Blockchain:             ThorBlockchain,
		ID:                     IDPrefix(date) + ".staking",
		Description:            fmt.Sprintf("1/1 - Received %s RUNE from TCY staking", amount),
		ReferencePricePerUnit:  price,
		ReferencePriceCurrency: cryptotaxcalculator.ReferencePriceCurrencyUSD,
	}}, nil
}
