package mappers

import (
	"fmt"

	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/util"
)

const Tcy = "TCY"

func tcyAmount(mapperName, leg string, tx midgard.Transaction) (string, error) {
	coin, err := firstCoin(mapperName, leg, tx)
	if err != nil {
		return "", err
	}
	return util.ToAssetAmount(coin.Amount)
}

// TcyClaimMapper maps a TCY claim. The in leg is the claiming address on the source chain,
// the out leg pays TCY to the THOR address.
type TcyClaimMapper struct{}

func (TcyClaimMapper) Name() string { return "TcyClaimMapper" }

func (m TcyClaimMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}
	if len(action.Out) == 0 {
		return nil, requireCount(m.Name(), "numAssetsOut", 1, 0)
	}

	output := action.Out[0]
	amount, err := tcyAmount(m.Name(), "out", output)
	if err != nil {
		return nil, err
	}

	return []cryptotaxcalculator.Row{{
		WalletExchange: output.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.Receive,
		BaseCurrency:   Tcy,
		BaseAmount:     amount,
		From:           ThorchainLedger,
		To:             output.Address,
		Blockchain:     ThorBlockchain,
		ID:             c.ID("tcy_claim"),
		Description:    fmt.Sprintf("1/1 - Claim %s TCY for address %s; %s", amount, action.In[0].Address, output.TxID),
	}}, nil
}

type TcyStakeMapper struct{}

func (TcyStakeMapper) Name() string { return "TcyStakeMapper" }

func (m TcyStakeMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}

	input := action.In[0]
	amount, err := tcyAmount(m.Name(), "in", input)
	if err != nil {
		return nil, err
	}

	return []cryptotaxcalculator.Row{{
		WalletExchange: input.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.StakingDeposit,
		BaseCurrency:   Tcy,
		BaseAmount:     amount,
		From:           input.Address,
		To:             ThorchainLedger,
		Blockchain:     ThorBlockchain,
		ID:             c.ID("tcy_stake"),
		Description:    fmt.Sprintf("1/1 - Stake %s TCY; %s", amount, input.TxID),
	}}, nil
}

type TcyUnstakeMapper struct{}

func (TcyUnstakeMapper) Name() string { return "TcyUnstakeMapper" }

func (m TcyUnstakeMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if len(action.Out) == 0 {
		return nil, requireCount(m.Name(), "numAssetsOut", 1, 0)
	}

	output := action.Out[0]
	amount, err := tcyAmount(m.Name(), "out", output)
	if err != nil {
		return nil, err
	}

	return []cryptotaxcalculator.Row{{
		WalletExchange: output.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.StakingWithdrawal,
		BaseCurrency:   Tcy,
		BaseAmount:     amount,
		From:           ThorchainLedger,
		To:             output.Address,
		Blockchain:     ThorBlockchain,
		ID:             c.ID("tcy_unstake"),
		Description:    fmt.Sprintf("1/1 - Unstake %s TCY; %s", amount, output.TxID),
	}}, nil
}
