package mappers

import (
	"fmt"

	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
)

type BondMapper struct{}

func (BondMapper) Name() string { return "BondMapper" }

func (m BondMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}

	input := action.In[0]
	coin, err := firstCoin(m.Name(), "in", input)
	if err != nil {
		return nil, err
	}
	amount, err := util.ToAssetAmount(coin.Amount)
	if err != nil {
		return nil, err
	}

	return []cryptotaxcalculator.Row{{
		WalletExchange: input.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.StakingDeposit,
		BaseCurrency:   Rune,
		BaseAmount:     amount,
		FeeCurrency:    Rune,
		FeeAmount:      defaultRuneFee(),
		From:           input.Address,
		To:             ThorchainLedger,
		Blockchain:     ThorBlockchain,
		ID:             c.ID("bond"),
		Description:    fmt.Sprintf("1/1 - Bond RUNE to %s; %s", action.Metadata.Bond.NodeAddress, input.TxID),
	}}, nil
}

type UnbondMapper struct{}

func (UnbondMapper) Name() string { return "UnbondMapper" }

func (m UnbondMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}
	if len(action.Out) == 0 {
		return nil, requireCount(m.Name(), "numAssetsOut", 1, 0)
	}

	input := action.In[0]
	coin, err := firstCoin(m.Name(), "out", action.Out[0])
	if err != nil {
		return nil, err
	}
	amount, err := util.ToAssetAmount(coin.Amount)
	if err != nil {
		return nil, err
	}

	return []cryptotaxcalculator.Row{{
		WalletExchange: input.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.StakingWithdrawal,
		BaseCurrency:   Rune,
		BaseAmount:     amount,
		FeeCurrency:    Rune,
		FeeAmount:      defaultRuneFee(),
		From:           ThorchainLedger,
		To:             input.Address,
		Blockchain:     ThorBlockchain,
		ID:             c.ID("unbond"),
		Description:    fmt.Sprintf("1/1 - Unbond %s RUNE from %s; %s", amount, action.Metadata.Bond.NodeAddress, input.TxID),
	}}, nil
}
