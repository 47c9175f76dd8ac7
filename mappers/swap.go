package mappers

import (
	"fmt"
	"strings"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/midgard"
)

// Memo field holding the destination address of swaps and loans.
// https://dev.thorchain.org/concepts/memos.html#swap
const memoDestAddr = 2

// SwapMapper maps a swap to a linked bridge-trade-out / bridge-trade-in pair.
type SwapMapper struct{}

func (SwapMapper) Name() string { return "SwapMapper" }

func (m SwapMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action

	if err := requireCount(m.Name(), "numAssetsIn", 1, len(action.In)); err != nil {
		return nil, err
	}

	input := action.In[0]
	inputCoin, err := firstCoin(m.Name(), "in", input)
	if err != nil {
		return nil, err
	}
	inputAsset, inputAmount, err := parseCoin(inputCoin)
	if err != nil {
		return nil, err
	}
	inputIsSynth := assets.IsSynth(inputCoin.Asset)

	// A synth leaving a non THORChain address is a savers withdrawal, not a swap.
	// Its memo carries no destination address.
	if inputIsSynth && !strings.HasPrefix(input.Address, "thor1") {
		return []cryptotaxcalculator.Row{}, nil
	}

	output, err := m.output(action)
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
	outputIsSynth := assets.IsSynth(outputCoin.Asset)

	if inputCoin.Asset == assets.StableAsset || outputCoin.Asset == assets.StableAsset {
		return nil, &MapperError{Mapper: m.Name(), Message: "Invalid swap - " + assets.StableAsset}
	}

	feeCurrency, feeAmount, err := networkFee(action.Metadata.Swap.NetworkFees)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Swap %s %s%s to %s %s%s; %s",
		inputAmount, synthLabel(inputIsSynth), inputAsset.Currency,
		outputAmount, synthLabel(outputIsSynth), outputAsset.Currency,
		input.TxID)

	return []cryptotaxcalculator.Row{
		{
			WalletExchange: input.Address,
			Date:           c.Date,
			Type:           cryptotaxcalculator.BridgeTradeOut,
			BaseCurrency:   inputAsset.Currency,
			BaseAmount:     inputAmount,
			QuoteCurrency:  outputAsset.Currency,
			QuoteAmount:    outputAmount,
			FeeCurrency:    feeCurrency,
			FeeAmount:      feeAmount,
			From:           input.Address,
			To:             output.Address,
			Blockchain:     inputAsset.Blockchain,
			ID:             c.ID("bridge-trade-out"),
			Description:    "1/2 - " + description,
		},
		{
			WalletExchange: output.Address,
			Date:           c.Date,
			Type:           cryptotaxcalculator.BridgeTradeIn,
			BaseCurrency:   outputAsset.Currency,
			BaseAmount:     outputAmount,
			From:           input.Address,
			To:             output.Address,
			Blockchain:     outputAsset.Blockchain,
			ID:             c.ID("bridge-trade-in"),
			Description:    "2/2 - " + description,
		},
	}, nil
}

// output finds the out leg paid to the memo's destination address.
func (m SwapMapper) output(action midgard.Action) (midgard.Transaction, error) {
	memo := action.Metadata.Swap.Memo
	if memo == "" {
		return midgard.Transaction{}, &MemoResolutionError{Mapper: m.Name(), Reason: "No memo"}
	}

	dest := memoField(memo, memoDestAddr)
	for _, out := range action.Out {
		if dest != "" && strings.EqualFold(out.Address, dest) {
			return out, nil
		}
	}

	return midgard.Transaction{}, &MemoResolutionError{Mapper: m.Name(), Reason: "No matching out tx"}
}
