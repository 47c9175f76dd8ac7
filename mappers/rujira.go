package mappers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
)

const ContractRujiraMergeDeposit = "wasm-rujira-merge/deposit"

// funds look like "1000000000thor.kuji"
var fundsPattern = regexp.MustCompile(`^(\d+)(.+)$`)

type RujiraMergeDepositMapper struct{}

func (RujiraMergeDepositMapper) Name() string { return "RujiraMergeDepositMapper" }

func (m RujiraMergeDepositMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}

	funds := action.Metadata.Contract.Funds
	match := fundsPattern.FindStringSubmatch(funds)
	if match == nil {
		return nil, &MapperError{Mapper: m.Name(), Message: "Invalid funds format: " + funds}
	}

	asset, err := assets.Parse(strings.ToUpper(match[2]))
	if err != nil {
		return nil, err
	}
	amount, err := util.ToAssetAmount(match[1])
	if err != nil {
		return nil, err
	}

	input := action.In[0]

	return []cryptotaxcalculator.Row{{
		WalletExchange: input.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.StakingDeposit,
		BaseCurrency:   asset.String(),
		BaseAmount:     amount,
		From:           input.Address,
		To:             ThorchainLedger,
		Blockchain:     ThorBlockchain,
		ID:             c.ID("rujira-merge-deposit"),
		Description:    fmt.Sprintf("1/1 - %s %s %s; %s", ContractRujiraMergeDeposit, amount, asset, input.TxID),
	}}, nil
}
