package mappers

import (
	"testing"

	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/thornode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkLoan(txType, memo string, in, out []midgard.Transaction) midgard.Action {
	return mkAction(midgard.TypeSwap, in, out, midgard.Metadata{Swap: &midgard.SwapMetadata{
		Memo:         memo,
		TxType:       txType,
		LiquidityFee: "5000000",
		NetworkFees:  []midgard.Coin{mkCoin("THOR.RUNE", "2000000")},
	}})
}

func TestLoanOpen(t *testing.T) {
	action := mkLoan(midgard.TxTypeLoanOpen, "$+:THOR.RUNE:thor1user",
		[]midgard.Transaction{mkTx("bc1user", testTxID, mkCoin("BTC.BTC", "100000000"))},
		[]midgard.Transaction{mkTx("thor1user", "", mkCoin("THOR.RUNE", "100000000000"))},
	)

	rows := mapWith(t, LoanOpenMapper{}, action)
	require.Len(t, rows, 2)

	assert.Equal(t, cryptotaxcalculator.Row{
		WalletExchange: "bc1user",
		Date:           actionTime,
		Type:           cryptotaxcalculator.CollateralDeposit,
		BaseCurrency:   "BTC",
		BaseAmount:     "1",
		FeeCurrency:    "RUNE",
		FeeAmount:      "0.05",
		From:           "bc1user",
		To:             ThorchainLedger,
		Blockchain:     "BTC",
		ID:             testIDBase + ".collateral-deposit",
		Description:    "1/2 LoanOpen deposit BTC to borrow RUNE; " + testTxID,
	}, rows[0])

	assert.Equal(t, cryptotaxcalculator.Row{
		WalletExchange: "thor1user",
		Date:           actionTime,
		Type:           cryptotaxcalculator.Loan,
		BaseCurrency:   "RUNE",
		BaseAmount:     "1000",
		FeeCurrency:    "RUNE",
		FeeAmount:      "0.02",
		From:           ThorchainLedger,
		To:             "thor1user",
		Blockchain:     "THOR",
		ID:             testIDBase + ".loan",
		Description:    "2/2 LoanOpen deposit BTC to borrow RUNE; " + testTxID,
	}, rows[1])
}

func TestLoanOpenAffiliateFee(t *testing.T) {
	action := mkLoan(midgard.TxTypeLoanOpen, "$+:THOR.RUNE:thor1user:0:thor1aff:10",
		[]midgard.Transaction{mkTx("bc1user", testTxID, mkCoin("BTC.BTC", "100000000"))},
		[]midgard.Transaction{
			mkTx("thor1aff", "", mkCoin("THOR.RUNE", "100000000")),
			mkTx("thor1user", "", mkCoin("THOR.RUNE", "100000000000")),
		},
	)

	rows := mapWith(t, LoanOpenMapper{}, action)
	require.Len(t, rows, 2)
	assert.Equal(t, "1000", rows[1].BaseAmount)
	assert.Equal(t, "1", rows[1].FeeAmount)
}

func TestLoanOpenWithTorInput(t *testing.T) {
	action := mkLoan(midgard.TxTypeNoOp, "$+:THOR.RUNE:thor1user",
		[]midgard.Transaction{mkTx("thor1module", testTxID, mkCoin("THOR.TOR", "6000000000000"))},
		[]midgard.Transaction{mkTx("thor1user", "", mkCoin("THOR.RUNE", "100000000000"))},
	)
	status := thornode.TxStatusResponse{Tx: &thornode.Tx{
		ID:          testTxID,
		Chain:       "BTC",
		FromAddress: "bc1user",
		Coins:       []thornode.Coin{{Asset: "BTC.BTC", Amount: "50000000", Decimals: 8}},
	}}

	rows, err := LoanOpenMapper{}.ToEntries(mkContext(t, action, nil, status))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bc1user", rows[0].WalletExchange)
	assert.Equal(t, "BTC", rows[0].BaseCurrency)
	assert.Equal(t, "0.5", rows[0].BaseAmount)

	_, err = LoanOpenMapper{}.ToEntries(mkContext(t, action, nil))
	assert.EqualError(t, err, "LoanOpenMapper: No thornode tx for THOR.TOR input")
}

func TestLoanOpenErrors(t *testing.T) {
	in := []midgard.Transaction{mkTx("bc1user", testTxID, mkCoin("BTC.BTC", "100000000"))}
	out := []midgard.Transaction{mkTx("thor1user", "", mkCoin("THOR.RUNE", "1"))}

	_, err := LoanOpenMapper{}.ToEntries(mkContext(t, mkLoan(midgard.TxTypeLoanOpen, "$+:THOR.RUNE:thor1user", nil, out), nil))
	assert.EqualError(t, err, "LoanOpenMapper: numAssetsIn must be 1 but was 0")

	_, err = LoanOpenMapper{}.ToEntries(mkContext(t, mkLoan(midgard.TxTypeLoanOpen, "", in, out), nil))
	assert.EqualError(t, err, "LoanOpenMapper: No memo")

	_, err = LoanOpenMapper{}.ToEntries(mkContext(t, mkLoan(midgard.TxTypeLoanOpen, "$+:THOR.RUNE:thor1other", in, out), nil))
	assert.EqualError(t, err, "LoanOpenMapper: No matching out tx")
}

func TestLoanRepaymentClosed(t *testing.T) {
	action := mkLoan(midgard.TxTypeLoanRepayment, "$-:BTC.BTC:bc1user",
		[]midgard.Transaction{mkTx("thor1user", testTxID, mkCoin("THOR.RUNE", "10000000000"))},
		[]midgard.Transaction{mkTx("bc1user", "", mkCoin("BTC.BTC", "100000000"))},
	)

	rows := mapWith(t, LoanRepaymentMapper{}, action)
	require.Len(t, rows, 2)

	assert.Equal(t, cryptotaxcalculator.LoanRepayment, rows[0].Type)
	assert.Equal(t, "100", rows[0].BaseAmount)
	assert.Equal(t, "0.05", rows[0].FeeAmount)
	assert.Equal(t, testIDBase+".loan-repayment", rows[0].ID)
	assert.Equal(t, "1/2 - LoanRepayment deposit RUNE to repay BTC loan. Closed loan; "+testTxID, rows[0].Description)

	assert.Equal(t, cryptotaxcalculator.CollateralWithdrawal, rows[1].Type)
	assert.Equal(t, "bc1user", rows[1].WalletExchange)
	assert.Equal(t, "BTC", rows[1].BaseCurrency)
	assert.Equal(t, "RUNE", rows[1].FeeCurrency)
	assert.Equal(t, "0.02", rows[1].FeeAmount)
	assert.Equal(t, testIDBase+".collateral-withdrawal", rows[1].ID)
	assert.Equal(t, "2/2 - LoanRepayment deposit RUNE to repay BTC loan. Closed loan; "+testTxID, rows[1].Description)
}

func TestLoanRepaymentOpen(t *testing.T) {
	action := mkLoan(midgard.TxTypeLoanRepayment, "$-:BTC.BTC:bc1user",
		[]midgard.Transaction{mkTx("thor1user", testTxID, mkCoin("THOR.RUNE", "10000000000"))},
		nil,
	)

	rows := mapWith(t, LoanRepaymentMapper{}, action)
	require.Len(t, rows, 1)
	assert.Equal(t, "1/1 - LoanRepayment deposit RUNE to repay BTC loan. No closure; "+testTxID, rows[0].Description)

	action.Metadata.Swap.Memo = ""
	_, err := LoanRepaymentMapper{}.ToEntries(mkContext(t, action, nil))
	assert.EqualError(t, err, "LoanRepaymentMapper: No memo")
}
