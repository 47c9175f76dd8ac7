package mappers

import (
	"fmt"
	"strings"

	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
)

var reasonReplacer = strings.NewReplacer("\n", " ", "\t", " ")

type RefundMapper struct{}

func (RefundMapper) Name() string { return "RefundMapper" }

func (m RefundMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}

	input := action.In[0]
	coin, err := firstCoin(m.Name(), "in", input)
	if err != nil {
		return nil, err
	}
	asset, amount, err := parseCoin(coin)
	if err != nil {
		return nil, err
	}

	feeCurrency, feeAmount, err := networkFee(action.Metadata.Refund.NetworkFees)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(reasonReplacer.Replace(action.Metadata.Refund.Reason))

	return []cryptotaxcalculator.Row{{
		WalletExchange: input.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.FailedIn,
		BaseCurrency:   asset.Currency,
		BaseAmount:     amount,
		FeeCurrency:    feeCurrency,
		FeeAmount:      feeAmount,
		From:           input.Address,
		Blockchain:     asset.Blockchain,
		ID:             c.ID("refund"),
		Description:    fmt.Sprintf("refund (%s): %s", input.TxID, reason),
	}}, nil
}
