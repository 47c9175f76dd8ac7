package mappers

import (
	"fmt"
	"strings"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/util"
)

// Memo fields, see https://dev.thorchain.org/concepts/memos.html#open-loan
const (
	memoRepayAsset = 1
	memoAffiliate  = 4
)

// collateral is the leg actually deposited when opening a loan.
type collateral struct {
	address string
	asset   assets.Asset
	amount  string
}

// LoanOpenMapper maps a loan open to a collateral-deposit and the loan received.
type LoanOpenMapper struct{}

func (LoanOpenMapper) Name() string { return "LoanOpenMapper" }

func (m LoanOpenMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if len(action.In) != 1 {
		return nil, &InvalidInputCountError{
			Mapper:  m.Name(),
			Message: fmt.Sprintf("numAssetsIn must be 1 but was %d", len(action.In)),
			Count:   len(action.In),
		}
	}

	txID := action.In[0].TxID

	deposit, err := m.collateral(c)
	if err != nil {
		return nil, err
	}

	memo := action.Metadata.Swap.Memo
	if memo == "" {
		return nil, &MemoResolutionError{Mapper: m.Name(), Reason: "No memo"}
	}

	output, ok := findOut(action.Out, memoField(memo, memoDestAddr))
	if !ok {
		return nil, &MemoResolutionError{Mapper: m.Name(), Reason: "No matching out tx"}
	}
	outputCoin, err := firstCoin(m.Name(), "out", output)
	if err != nil {
		return nil, err
	}
	outputAsset, outputAmount, err := parseCoin(outputCoin)
	if err != nil {
		return nil, err
	}

	liquidityFee, err := optionalAmount(action.Metadata.Swap.LiquidityFee)
	if err != nil {
		return nil, err
	}
	liquidityFeeCurrency := ""
	if liquidityFee != "" {
		liquidityFeeCurrency = Rune
	}

	// Only one of affiliate and network fee is used as they may be in different assets.
	feeCurrency, feeAmount, err := m.affiliateFee(action, memo)
	if err != nil {
		return nil, err
	}
	if feeCurrency == "" {
		feeCurrency, feeAmount, err = networkFee(action.Metadata.Swap.NetworkFees)
		if err != nil {
			return nil, err
		}
	}

	description := fmt.Sprintf("LoanOpen deposit %s to borrow %s; %s", deposit.asset.Currency, outputAsset.Currency, txID)

	return []cryptotaxcalculator.Row{
		{
			WalletExchange: deposit.address,
			Date:           c.Date,
			Type:           cryptotaxcalculator.CollateralDeposit,
			BaseCurrency:   deposit.asset.Currency,
			BaseAmount:     deposit.amount,
			FeeCurrency:    liquidityFeeCurrency,
			FeeAmount:      liquidityFee,
			From:           deposit.address,
			To:             ThorchainLedger,
			Blockchain:     deposit.asset.Blockchain,
			ID:             c.ID("collateral-deposit"),
			Description:    "1/2 " + description,
		},
		{
			WalletExchange: output.Address,
			Date:           c.Date,
			Type:           cryptotaxcalculator.Loan,
			BaseCurrency:   outputAsset.Currency,
			BaseAmount:     outputAmount,
			FeeCurrency:    feeCurrency,
			FeeAmount:      feeAmount,
			From:           ThorchainLedger,
			To:             output.Address,
			Blockchain:     outputAsset.Blockchain,
			ID:             c.ID("loan"),
			Description:    "2/2 " + description,
		},
	}, nil
}

// collateral returns the deposited leg. Loans reported as noOp swaps show THOR.TOR as input;
// the real deposit is then read from the related thornode tx.
func (m LoanOpenMapper) collateral(c *Context) (collateral, error) {
	input := c.Action.In[0]
	coin, err := firstCoin(m.Name(), "in", input)
	if err != nil {
		return collateral{}, err
	}

	if coin.Asset != assets.StableAsset {
		asset, amount, err := parseCoin(coin)
		if err != nil {
			return collateral{}, err
		}
		if asset.Currency == "" || amount == "" {
			return collateral{}, &MapperError{Mapper: m.Name(), Message: "No input currency"}
		}
		return collateral{address: input.Address, asset: asset, amount: amount}, nil
	}

	tx, ok := c.ThornodeTx(input.TxID)
	if !ok || len(tx.Coins) == 0 {
		return collateral{}, &MapperError{Mapper: m.Name(), Message: "No thornode tx for " + assets.StableAsset + " input"}
	}

	asset, amount, err := parseCoin(midgard.Coin{Asset: tx.Coins[0].Asset, Amount: tx.Coins[0].Amount})
	if err != nil {
		return collateral{}, err
	}

	return collateral{address: tx.FromAddress, asset: asset, amount: amount}, nil
}

// affiliateFee is the out leg paid to the memo's affiliate address, if any.
func (m LoanOpenMapper) affiliateFee(action midgard.Action, memo string) (string, string, error) {
	affiliate := memoField(memo, memoAffiliate)
	if affiliate == "" {
		return "", "", nil
	}

	out, ok := findOut(action.Out, affiliate)
	if !ok || len(out.Coins) == 0 {
		return "", "", nil
	}

	asset, amount, err := parseCoin(out.Coins[0])
	if err != nil {
		return "", "", err
	}
	return asset.Currency, amount, nil
}

// LoanRepaymentMapper maps a repayment. When the loan closes Midgard reports a single out leg
// returning the collateral, which becomes a collateral-withdrawal.
type LoanRepaymentMapper struct{}

func (LoanRepaymentMapper) Name() string { return "LoanRepaymentMapper" }

func (m LoanRepaymentMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if len(action.In) != 1 {
		return nil, &InvalidInputCountError{
			Mapper:  m.Name(),
			Message: fmt.Sprintf("numAssetsIn must be 1 but was %d", len(action.In)),
			Count:   len(action.In),
		}
	}

	input := action.In[0]
	txID := input.TxID

	inputCoin, err := firstCoin(m.Name(), "in", input)
	if err != nil {
		return nil, err
	}
	inputAsset, inputAmount, err := parseCoin(inputCoin)
	if err != nil {
		return nil, err
	}

	memo := action.Metadata.Swap.Memo
	if memo == "" {
		return nil, &MemoResolutionError{Mapper: m.Name(), Reason: "No memo"}
	}

	collateralAsset, err := assets.Parse(memoField(memo, memoRepayAsset))
	if err != nil {
		return nil, err
	}

	liquidityFee, err := optionalAmount(action.Metadata.Swap.LiquidityFee)
	if err != nil {
		return nil, err
	}
	liquidityFeeCurrency := ""
	if liquidityFee != "" {
		liquidityFeeCurrency = Rune
	}

	isClosed := len(action.Out) == 1
	numbering, closure := "1/1", "No closure"
	if isClosed {
		numbering, closure = "1/2", "Closed loan"
	}

	description := func(prefix, closure string) string {
		return fmt.Sprintf("%s - LoanRepayment deposit %s to repay %s loan. %s; %s", prefix, inputAsset.Currency, collateralAsset.Currency, closure, txID)
	}

	rows := []cryptotaxcalculator.Row{{
		WalletExchange: input.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.LoanRepayment,
		BaseCurrency:   inputAsset.Currency,
		BaseAmount:     inputAmount,
		FeeCurrency:    liquidityFeeCurrency,
		FeeAmount:      liquidityFee,
		From:           input.Address,
		To:             ThorchainLedger,
		Blockchain:     inputAsset.Blockchain,
		ID:             c.ID("loan-repayment"),
		Description:    description(numbering, closure),
	}}

	if !isClosed {
		return rows, nil
	}

	output, ok := findOut(action.Out, memoField(memo, memoDestAddr))
	if !ok {
		return nil, &MemoResolutionError{Mapper: m.Name(), Reason: "No matching out tx"}
	}
	outputCoin, err := firstCoin(m.Name(), "out", output)
	if err != nil {
		return nil, err
	}
	outputAsset, outputAmount, err := parseCoin(outputCoin)
	if err != nil {
		return nil, err
	}

	feeCurrency, feeAmount, err := networkFee(action.Metadata.Swap.NetworkFees)
	if err != nil {
		return nil, err
	}

	rows = append(rows, cryptotaxcalculator.Row{
		WalletExchange: output.Address,
		Date:           c.Date,
		Type:           cryptotaxcalculator.CollateralWithdrawal,
		BaseCurrency:   outputAsset.Currency,
		BaseAmount:     outputAmount,
		FeeCurrency:    feeCurrency,
		FeeAmount:      feeAmount,
		From:           ThorchainLedger,
		To:             output.Address,
		Blockchain:     outputAsset.Blockchain,
		ID:             c.ID("collateral-withdrawal"),
		Description:    description("2/2", "Closed loan"),
	})

	return rows, nil
}

// findOut matches an out leg by address, ignoring case.
func findOut(out []midgard.Transaction, address string) (midgard.Transaction, bool) {
	if address == "" {
		return midgard.Transaction{}, false
	}
	for _, tx := range out {
		if strings.EqualFold(tx.Address, address) {
			return tx, true
		}
	}
	return midgard.Transaction{}, false
}

func optionalAmount(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	return util.ToAssetAmount(raw)
}
