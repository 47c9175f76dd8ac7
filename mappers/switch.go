package mappers

import (
	"fmt"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
)

// SwitchMapper maps an asset migration (e.g. BNB.RUNE or GAIA.KUJI to THOR) to a bridge-out and a
// bridge-in 10 seconds later, so the importer links them in the right order.
type SwitchMapper struct{}

func (SwitchMapper) Name() string { return "SwitchMapper" }

func (m SwitchMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}
	if err := requireCount(m.Name(), "numAssetsOut", 1, len(action.Out)); err != nil {
		return nil, err
	}

	input := action.In[0]
	output := action.Out[0]

	inputCoin, err := firstCoin(m.Name(), "in", input)
	if err != nil {
		return nil, err
	}
	inputAsset, inputAmount, err := parseCoin(inputCoin)
	if err != nil {
		return nil, err
	}

	outputCoin, err := firstCoin(m.Name(), "out", output)
	if err != nil {
		return nil, err
	}
	outputAsset, outputAmount, err := parseCoin(outputCoin)
	if err != nil {
		return nil, err
	}

	feeCurrency, feeAmount, err := m.fee(c, input.TxID)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Switch %s to %s", inputAsset, outputAsset)

	return []cryptotaxcalculator.Row{
		{
			WalletExchange: input.Address,
			Date:           c.Date,
			Type:           cryptotaxcalculator.BridgeOut,
			BaseCurrency:   inputAsset.Currency,
			BaseAmount:     inputAmount,
			FeeCurrency:    feeCurrency,
			FeeAmount:      feeAmount,
			From:           input.Address,
			To:             output.Address,
			Blockchain:     inputAsset.Blockchain,
			ID:             c.ID("bridge-out"),
			Description:    fmt.Sprintf("1/2 - %s (send %s); %s", description, inputAsset, input.TxID),
		},
		{
			WalletExchange: output.Address,
			Date:           c.At(1),
			Type:           cryptotaxcalculator.BridgeIn,
			BaseCurrency:   outputAsset.Currency,
			BaseAmount:     outputAmount,
			From:           input.Address,
			To:             output.Address,
			Blockchain:     outputAsset.Blockchain,
			ID:             c.ID("bridge-in"),
			Description:    fmt.Sprintf("2/2 - %s (receive %s); %s", description, outputAsset, input.TxID),
		},
	}, nil
}

// fee reads the gas of the related thornode tx. Missing data leaves the fee blank.
func (m SwitchMapper) fee(c *Context, txID string) (string, string, error) {
	tx, ok := c.ThornodeTx(txID)
	if !ok || len(tx.Gas) == 0 {
		return "", "", nil
	}

	asset, err := assets.Parse(tx.Gas[0].Asset)
	if err != nil {
		return "", "", err
	}

	amount, err := util.ToAssetAmount(tx.Gas[0].Amount)
	if err != nil {
		return "", "", err
	}

	return asset.Currency, amount, nil
}
