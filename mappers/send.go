package mappers

import (
	"fmt"
	"strings"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/koitsu/thorchain-cryptotax/viewblock"
)

const (
	viewblockSend = "send"

	delegateArkeoMemoPrefix = "delegate:arkeo:"
)

// ViewblockMapper converts one explorer tx of a wallet into rows.
type ViewblockMapper interface {
	Name() string
	ToEntries(tx viewblock.Tx, wallet string) ([]cryptotaxcalculator.Row, error)
}

// SelectViewblock returns the mapper for an explorer tx, or nil when it is not a bank send.
func SelectViewblock(tx viewblock.Tx) ViewblockMapper {
	if !tx.HasType(viewblockSend) {
		return nil
	}
	if strings.HasPrefix(tx.Memo, delegateArkeoMemoPrefix) {
		return DelegateArkeoMapper{}
	}
	return SendMapper{}
}

// send is the single bank transfer carried by an explorer tx.
type send struct {
	from   string
	to     string
	amount string
	asset  string
	fee    string
}

func readSend(mapperName string, tx viewblock.Tx) (send, error) {
	msgs := tx.SendMsgs()
	if err := requireCount(mapperName, "send msgs", 1, len(msgs)); err != nil {
		return send{}, err
	}
	msg := msgs[0]
	if err := requireCount(mapperName, "send amounts", 1, len(msg.Amount)); err != nil {
		return send{}, err
	}

	amount, err := util.ToAssetAmount(msg.Amount[0].Amount)
	if err != nil {
		return send{}, err
	}

	gas := DefaultRuneGas
	if tx.Gas != nil && tx.Gas.Amount != "" {
		gas = tx.Gas.Amount
	}
	fee, err := util.ToAssetAmount(gas)
	if err != nil {
		return send{}, err
	}

	return send{
		from:   msg.FromAddress,
		to:     msg.ToAddress,
		amount: amount,
		asset:  tx.Input.Asset,
		fee:    fee,
	}, nil
}

func sendAssetError(tx viewblock.Tx, err error) error {
	return &ActionError{
		Source: SourceViewblock,
		Type:   viewblockSend,
		TxID:   tx.Hash,
		Err:    &unparsableAssetError{Descriptor: tx.Input.Asset, Err: err},
	}
}

// SendMapper maps a bank send as send or receive depending on which side the wallet is on.
type SendMapper struct{}

func (SendMapper) Name() string { return "SendMapper" }

func (m SendMapper) ToEntries(tx viewblock.Tx, wallet string) ([]cryptotaxcalculator.Row, error) {
	s, err := readSend(m.Name(), tx)
	if err != nil {
		return nil, err
	}

	var rowType cryptotaxcalculator.Type
	switch wallet {
	case s.from:
		rowType = cryptotaxcalculator.Send
	case s.to:
		rowType = cryptotaxcalculator.Receive
	default:
		return nil, &MapperError{Mapper: m.Name(), Message: "failed to determine send or receive"}
	}

	var (
		ticker string
		kind   assets.Kind
	)
	// TCY arrives without a chain prefix.
	if s.asset == Tcy {
		ticker = Tcy
	} else {
		asset, k, err := assets.ParseAny(s.asset)
		if err != nil {
			return nil, sendAssetError(tx, err)
		}
		ticker, kind = asset.Currency, k
	}

	row := cryptotaxcalculator.Row{
		WalletExchange: wallet,
		Date:           tx.Time(),
		Type:           rowType,
		BaseCurrency:   ticker,
		BaseAmount:     s.amount,
		From:           s.from,
		To:             s.to,
		Blockchain:     ThorBlockchain,
		ID:             IDPrefix(tx.Time()) + "." + rowType.String(),
	}

	verb := "Receive"
	if rowType == cryptotaxcalculator.Send {
		verb = "Send"
		row.FeeCurrency = Rune
		row.FeeAmount = s.fee
	}

	trade := ""
	if kind == assets.Trade {
		trade = "Trade "
	}
	row.Description = fmt.Sprintf("%s %s %s%s%s; %s", verb, s.amount, synthLabel(kind == assets.Synth), trade, ticker, tx.Hash)

	return []cryptotaxcalculator.Row{row}, nil
}

// DelegateArkeoMapper books an Arkeo delegation send as an expense.
type DelegateArkeoMapper struct{}

func (DelegateArkeoMapper) Name() string { return "DelegateArkeoMapper" }

func (m DelegateArkeoMapper) ToEntries(tx viewblock.Tx, wallet string) ([]cryptotaxcalculator.Row, error) {
	s, err := readSend(m.Name(), tx)
	if err != nil {
		return nil, err
	}

	asset, _, err := assets.ParseAny(s.asset)
	if err != nil {
		return nil, sendAssetError(tx, err)
	}

	return []cryptotaxcalculator.Row{{
		WalletExchange: wallet,
		Date:           tx.Time(),
		Type:           cryptotaxcalculator.Expense,
		BaseCurrency:   asset.Currency,
		BaseAmount:     s.amount,
		FeeCurrency:    Rune,
		FeeAmount:      s.fee,
		From:           s.from,
		To:             s.to,
		Blockchain:     ThorBlockchain,
		ID:             IDPrefix(tx.Time()) + "." + cryptotaxcalculator.Expense.String(),
		Description:    fmt.Sprintf("1/1 - DelegateArkeoWallet; %s", tx.Hash),
	}}, nil
}
