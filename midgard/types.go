// Package midgard holds the Midgard v2 action model and a rate limited client for it.
package midgard

import (
	"fmt"
)

const (
	TypeSwap             = "swap"
	TypeAddLiquidity     = "addLiquidity"
	TypeWithdraw         = "withdraw"
	TypeDonate           = "donate"
	TypeRefund           = "refund"
	TypeSwitch           = "switch"
	TypeSend             = "send"
	TypeThorname         = "thorname"
	TypeBond             = "bond"
	TypeUnbond           = "unbond"
	TypeRunePoolDeposit  = "runePoolDeposit"
	TypeRunePoolWithdraw = "runePoolWithdraw"
	TypeTcyClaim         = "tcy_claim"
	TypeTcyStake         = "tcy_stake"
	TypeTcyUnstake       = "tcy_unstake"
	TypeContract         = "contract"
)

// Swap sub types found in metadata.swap.txType.
const (
	TxTypeSwap          = "swap"
	TxTypeLoanOpen      = "loanOpen"
	TxTypeLoanRepayment = "loanRepayment"
	TxTypeNoOp          = "noOp"
)

const StatusSuccess = "success"

type ActionsResponse struct {
	Actions []Action `json:"actions"`
	Count   string   `json:"count"`
}

type Action struct {
	Date     string        `json:"date"`
	Height   string        `json:"height"`
	In       []Transaction `json:"in"`
	Out      []Transaction `json:"out"`
	Metadata Metadata      `json:"metadata"`
	Pools    []string      `json:"pools"`
	Status   string        `json:"status"`
	Type     string        `json:"type"`
}

// Transaction is one leg of an action.
type Transaction struct {
	Address string `json:"address"`
	Coins   []Coin `json:"coins"`
	TxID    string `json:"txID"`
	Height  string `json:"height,omitempty"`
}

type Coin struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// Metadata carries one variant per action type. Only the variant matching Action.Type is expected to be set.
type Metadata struct {
	Swap             *SwapMetadata         `json:"swap,omitempty"`
	AddLiquidity     *AddLiquidityMetadata `json:"addLiquidity,omitempty"`
	Withdraw         *WithdrawMetadata     `json:"withdraw,omitempty"`
	Refund           *RefundMetadata       `json:"refund,omitempty"`
	Bond             *BondMetadata         `json:"bond,omitempty"`
	RunePoolDeposit  *RunePoolMetadata     `json:"runePoolDeposit,omitempty"`
	RunePoolWithdraw *RunePoolMetadata     `json:"runePoolWithdraw,omitempty"`
	Contract         *ContractMetadata     `json:"contract,omitempty"`
	Thorname         *ThornameMetadata     `json:"thorname,omitempty"`
}

type SwapMetadata struct {
	AffiliateAddress string `json:"affiliateAddress"`
	AffiliateFee     string `json:"affiliateFee"`
	IsStreamingSwap  bool   `json:"isStreamingSwap"`
	LiquidityFee     string `json:"liquidityFee"`
	Memo             string `json:"memo"`
	NetworkFees      []Coin `json:"networkFees"`
	SwapSlip         string `json:"swapSlip"`
	SwapTarget       string `json:"swapTarget"`
	TxType           string `json:"txType"`
}

type AddLiquidityMetadata struct {
	LiquidityUnits string `json:"liquidityUnits"`
}

type WithdrawMetadata struct {
	Asymmetry                 string `json:"asymmetry"`
	BasisPoints               string `json:"basisPoints"`
	ImpermanentLossProtection string `json:"impermanentLossProtection"`
	LiquidityUnits            string `json:"liquidityUnits"`
	NetworkFees               []Coin `json:"networkFees"`
}

type RefundMetadata struct {
	AffiliateAddress string `json:"affiliateAddress"`
	AffiliateFee     string `json:"affiliateFee"`
	Memo             string `json:"memo"`
	NetworkFees      []Coin `json:"networkFees"`
	Reason           string `json:"reason"`
}

type BondMetadata struct {
	Memo        string `json:"memo"`
	NodeAddress string `json:"nodeAddress"`
	Provider    string `json:"provider"`
}

type RunePoolMetadata struct {
	Units string `json:"units"`
}

type ContractMetadata struct {
	ContractType string `json:"contractType"`
	Funds        string `json:"funds"`
	Msg          any    `json:"msg,omitempty"`
	Attributes   any    `json:"attributes,omitempty"`
}

type ThornameMetadata struct {
	Address         string `json:"address"`
	Chain           string `json:"chain"`
	ExpireBlock     string `json:"expire"`
	FundAmount      string `json:"fundAmount"`
	RegistrationFee string `json:"registrationFee"`
	Thorname        string `json:"thorname"`
}

// MissingMetadataError is returned by Validate when the metadata variant required by the action type is absent.
type MissingMetadataError struct {
	Type    string
	Variant string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("%s action has no %s metadata", e.Type, e.Variant)
}

// Validate checks that the metadata variant a mapper will read is present for the action's type.
// Types whose mappers read no metadata always pass.
func (a Action) Validate() error {
	var missing string

	switch a.Type {
	case TypeSwap:
		if a.Metadata.Swap == nil {
			missing = "swap"
		}
	case TypeAddLiquidity:
		if a.Metadata.AddLiquidity == nil {
			missing = "addLiquidity"
		}
	case TypeWithdraw:
		if a.Metadata.Withdraw == nil {
			missing = "withdraw"
		}
	case TypeRefund:
		if a.Metadata.Refund == nil {
			missing = "refund"
		}
	case TypeBond, TypeUnbond:
		if a.Metadata.Bond == nil {
			missing = "bond"
		}
	case TypeRunePoolDeposit:
		if a.Metadata.RunePoolDeposit == nil {
			missing = "runePoolDeposit"
		}
	case TypeRunePoolWithdraw:
		if a.Metadata.RunePoolWithdraw == nil {
			missing = "runePoolWithdraw"
		}
	case TypeContract:
		if a.Metadata.Contract == nil {
			missing = "contract"
		}
	}

	if missing != "" {
		return &MissingMetadataError{Type: a.Type, Variant: missing}
	}
	return nil
}

// TxType returns metadata.swap.txType, or "" for non swap actions.
func (a Action) TxType() string {
	if a.Metadata.Swap == nil {
		return ""
	}
	return a.Metadata.Swap.TxType
}

// ContractType returns metadata.contract.contractType, or "".
func (a Action) ContractType() string {
	if a.Metadata.Contract == nil {
		return ""
	}
	return a.Metadata.Contract.ContractType
}

// FirstInAsset is the asset of the first coin of the first in leg, or "".
func (a Action) FirstInAsset() string {
	if len(a.In) == 0 || len(a.In[0].Coins) == 0 {
		return ""
	}
	return a.In[0].Coins[0].Asset
}

// FirstInTxID is the tx id of the first in leg, or "".
func (a Action) FirstInTxID() string {
	if len(a.In) == 0 {
		return ""
	}
	return a.In[0].TxID
}

type TcyDistribution struct {
	APR           string                `json:"apr"`
	Total         string                `json:"total"`
	Address       string                `json:"address"`
	Distributions []TcyDistributionItem `json:"distributions"`
}

// TcyDistributionItem amounts and prices are 1e8 integers, Date is unix seconds.
type TcyDistributionItem struct {
	Amount string `json:"amount"`
	Price  string `json:"price"`
	Date   string `json:"date"`
}
