package mappers

import (
	"fmt"

	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
)

// ThornameMapper books registration and funding of a THORName as an expense.
// Every variant pays the fixed network fee, an update without coins pays nothing else.
type ThornameMapper struct{}

func (ThornameMapper) Name() string { return "ThornameMapper" }

func (m ThornameMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}

	input := action.In[0]
	row := cryptotaxcalculator.Row{
		WalletExchange: input.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.Expense,
		From:           input.Address,
		To:             ThorchainLedger,
		Blockchain:     ThorBlockchain,
		FeeCurrency:    Rune,
		FeeAmount:      defaultRuneFee(),
		ID:             c.ID("thorname"),
	}

	if len(input.Coins) == 0 {
		row.Description = fmt.Sprintf("1/1 - Update Thorname; %s", input.TxID)
		return []cryptotaxcalculator.Row{row}, nil
	}

	amount, err := util.ToAssetAmount(input.Coins[0].Amount)
	if err != nil {
		return nil, err
	}

	row.BaseCurrency = Rune
	row.BaseAmount = amount
	row.Description = fmt.Sprintf("1/1 - Register/fund Thorname with %s RUNE; %s", amount, input.TxID)

	return []cryptotaxcalculator.Row{row}, nil
}
