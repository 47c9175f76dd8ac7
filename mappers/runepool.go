package mappers

import (
	"fmt"

	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
)

// RunePoolLpToken is the synthetic LP token issued for RUNEPool deposits.
const RunePoolLpToken = "ThorLP.RUNE"

type RunePoolDepositMapper struct{}

func (RunePoolDepositMapper) Name() string { return "RunePoolDepositMapper" }

func (m RunePoolDepositMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
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
	units, err := util.ToAssetAmount(action.Metadata.RunePoolDeposit.Units)
	if err != nil {
		return nil, err
	}

	address := orMissing(input.Address)

	return []cryptotaxcalculator.Row{
		{
			WalletExchange: address,
			Date:           c.Date,
			Type:           cryptotaxcalculator.AddLiquidity,
			BaseCurrency:   Rune,
			BaseAmount:     amount,
			From:           address,
			To:             ThorchainLedger,
			Blockchain:     ThorBlockchain,
			ID:             c.ID("add-liquidity"),
			Description:    fmt.Sprintf("1/2 - Deposit %s RUNE to RUNEPool; %s", amount, input.TxID),
		},
		{
			WalletExchange: address,
			Date:           c.At(1),
			Type:           cryptotaxcalculator.ReceiveLpToken,
			BaseCurrency:   RunePoolLpToken,
			BaseAmount:     units,
			From:           ThorchainLedger,
			To:             address,
			Blockchain:     ThorBlockchain,
			ID:             c.ID("receive-lp-token"),
			Description:    fmt.Sprintf("2/2 - Receive LP token from RUNEPool; %s", input.TxID),
		},
	}, nil
}

type RunePoolWithdrawMapper struct{}

func (RunePoolWithdrawMapper) Name() string { return "RunePoolWithdrawMapper" }

func (m RunePoolWithdrawMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if len(action.Out) == 0 {
		return nil, requireCount(m.Name(), "numAssetsOut", 1, 0)
	}

	output := action.Out[0]
	coin, err := firstCoin(m.Name(), "out", output)
	if err != nil {
		return nil, err
	}
	amount, err := util.ToAssetAmount(coin.Amount)
	if err != nil {
		return nil, err
	}
	units, err := util.ToAssetAmount(action.Metadata.RunePoolWithdraw.Units)
	if err != nil {
		return nil, err
	}

	return []cryptotaxcalculator.Row{
		{
			WalletExchange: output.Address,
			Date:           c.Date,
			Type:           cryptotaxcalculator.ReturnLpToken,
			BaseCurrency:   RunePoolLpToken,
			BaseAmount:     units,
			From:           output.Address,
			To:             ThorchainLedger,
			Blockchain:     ThorBlockchain,
			ID:             c.ID("return-lp-token"),
			Description:    fmt.Sprintf("1/2 - Return LP token to RUNEPool; %s", output.TxID),
		},
		{
			WalletExchange: output.Address,
			Date:           c.At(1),
			Type:           cryptotaxcalculator.RemoveLiquidity,
			BaseCurrency:   Rune,
			BaseAmount:     amount,
			From:           ThorchainLedger,
			To:             output.Address,
			Blockchain:     ThorBlockchain,
			ID:             c.ID("remove-liquidity"),
			Description:    fmt.Sprintf("2/2 - Withdraw %s RUNE from RUNEPool; %s", amount, output.TxID),
		},
	}, nil
}
