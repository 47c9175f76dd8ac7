package cryptotaxcalculator

import "time"

const (
	// TimeLayout is the importer's default "YYYY-MM-DD HH:mm:ss".
	TimeLayout = "2006-01-02 15:04:05"

	ReferencePriceCurrencyUSD = "USD"
)

// Type is the CTC transaction category.
type Type string

const (
	Unspecified          Type = "unspecified"
	Buy                  Type = "buy"
	Sell                 Type = "sell"
	FiatDeposit          Type = "fiat-deposit"
	FiatWithdrawal       Type = "fiat-withdrawal"
	Fee                  Type = "fee"
	Approval             Type = "approval"
	Receive              Type = "receive"
	Send                 Type = "send"
	ChainSplit           Type = "chain-split"
	Expense              Type = "expense"
	Stolen               Type = "stolen"
	Lost                 Type = "lost"
	Burn                 Type = "burn"
	Income               Type = "income"
	Interest             Type = "interest"
	Mining               Type = "mining"
	Airdrop              Type = "airdrop"
	Staking              Type = "staking"
	StakingDeposit       Type = "staking-deposit"
	StakingWithdrawal    Type = "staking-withdrawal"
	Rebate               Type = "rebate"
	Cashback             Type = "cashback"
	Royalty              Type = "royalty"
	PersonalUse          Type = "personal-use"
	IncomingGift         Type = "incoming-gift"
	OutgoingGift         Type = "outgoing-gift"
	Borrow               Type = "borrow"
	Loan                 Type = "loan"
	LoanRepayment        Type = "loan-repayment"
	Liquidate            Type = "liquidate"
	BridgeIn             Type = "bridge-in"
	BridgeOut            Type = "bridge-out"
	Mint                 Type = "mint"
	CollateralWithdrawal Type = "collateral-withdrawal"
	CollateralDeposit    Type = "collateral-deposit"
	AddLiquidity         Type = "add-liquidity"
	ReceiveLpToken       Type = "receive-lp-token"
	RemoveLiquidity      Type = "remove-liquidity"
	ReturnLpToken        Type = "return-lp-token"
	FailedIn             Type = "failed-in"
	FailedOut            Type = "failed-out"
	Spam                 Type = "spam"
	SwapIn               Type = "swap-in"
	SwapOut              Type = "swap-out"
	BridgeTradeIn        Type = "bridge-trade-in"
	BridgeTradeOut       Type = "bridge-trade-out"
)

func (t Type) String() string {
	return string(t)
}

// Row is one entry of the advanced manual CSV import.
// WalletExchange selects the output file and is not written as a column.
type Row struct {
	WalletExchange         string    `json:"walletExchange,omitempty"`
	Date                   time.Time `json:"timestamp"`
	Type                   Type      `json:"type"`
	BaseCurrency           string    `json:"baseCurrency"`
	BaseAmount             string    `json:"baseAmount"`
	QuoteCurrency          string    `json:"quoteCurrency,omitempty"`
	QuoteAmount            string    `json:"quoteAmount,omitempty"`
	FeeCurrency            string    `json:"feeCurrency,omitempty"`
	FeeAmount              string    `json:"feeAmount,omitempty"`
	From                   string    `json:"from,omitempty"`
	To                     string    `json:"to,omitempty"`
	Blockchain             string    `json:"blockchain,omitempty"`
	ID                     string    `json:"id,omitempty"`
	Description            string    `json:"description,omitempty"`
	ReferencePricePerUnit  string    `json:"referencePricePerUnit,omitempty"`
	ReferencePriceCurrency string    `json:"referencePriceCurrency,omitempty"`
}

func GetHeaders() []string {
	return []string{
		"Timestamp (UTC)",
		"Type",
		"Base Currency",
		"Base Amount",
		"Quote Currency (Optional)",
		"Quote Amount (Optional)",
		"Fee Currency (Optional)",
		"Fee Amount (Optional)",
		"From (Optional)",
		"To (Optional)",
		"Blockchain (Optional)",
		"ID (Optional)",
		"Description (Optional)",
		"Reference Price Per Unit (Optional)",
		"Reference Price Currency (Optional)",
	}
}
