package mappers

import (
	"testing"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/viewblock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sender    = "thor1sender"
	recipient = "thor1recipient"
	sendHash  = "ABCDEF"
)

func mkSend(asset, amount, memo string, gas *viewblock.Gas) viewblock.Tx {
	return viewblock.Tx{
		Hash:      sendHash,
		Timestamp: actionTime.UnixMilli(),
		Memo:      memo,
		Types:     []string{"send"},
		Input:     viewblock.Input{Chain: "THOR", Asset: asset},
		Msgs: []viewblock.Msg{{
			Type:        viewblock.TypeMsgSend,
			FromAddress: sender,
			ToAddress:   recipient,
			Amount:      []viewblock.MsgAmount{{Denom: "rune", Amount: amount}},
		}},
		Gas: gas,
	}
}

func TestSelectViewblock(t *testing.T) {
	assert.IsType(t, SendMapper{}, SelectViewblock(mkSend("THOR.RUNE", "1", "", nil)))
	assert.IsType(t, DelegateArkeoMapper{}, SelectViewblock(mkSend("THOR.RUNE", "1", "delegate:arkeo:tarkeo1", nil)))

	tx := mkSend("THOR.RUNE", "1", "", nil)
	tx.Types = []string{"deposit"}
	assert.Nil(t, SelectViewblock(tx))
}

func TestSendMapperSend(t *testing.T) {
	rows, err := SendMapper{}.ToEntries(mkSend("THOR.RUNE", "1000000000", "", nil), sender)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, cryptotaxcalculator.Row{
		WalletExchange: sender,
		Date:           actionTime,
		Type:           cryptotaxcalculator.Send,
		BaseCurrency:   "RUNE",
		BaseAmount:     "10",
		FeeCurrency:    "RUNE",
		FeeAmount:      "0.02",
		From:           sender,
		To:             recipient,
		Blockchain:     "THOR",
		ID:             testIDBase + ".send",
		Description:    "Send 10 RUNE; " + sendHash,
	}, rows[0])
}

func TestSendMapperReceive(t *testing.T) {
	rows, err := SendMapper{}.ToEntries(mkSend("BTC/BTC", "100000", "", &viewblock.Gas{Amount: "3000000", Asset: "THOR.RUNE"}), recipient)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, cryptotaxcalculator.Receive, rows[0].Type)
	assert.Equal(t, recipient, rows[0].WalletExchange)
	assert.Equal(t, "BTC", rows[0].BaseCurrency)
	assert.Empty(t, rows[0].FeeAmount)
	assert.Equal(t, testIDBase+".receive", rows[0].ID)
	assert.Equal(t, "Receive 0.001 Synth BTC; "+sendHash, rows[0].Description)
}

func TestSendMapperAssets(t *testing.T) {
	rows, err := SendMapper{}.ToEntries(mkSend("TCY", "100000000", "", &viewblock.Gas{Amount: "3000000"}), sender)
	require.NoError(t, err)
	assert.Equal(t, "TCY", rows[0].BaseCurrency)
	assert.Equal(t, "0.03", rows[0].FeeAmount)
	assert.Equal(t, "Send 1 TCY; "+sendHash, rows[0].Description)

	rows, err = SendMapper{}.ToEntries(mkSend("ETH~USDC-0XA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48", "100000000", "", nil), sender)
	require.NoError(t, err)
	assert.Equal(t, "USDC", rows[0].BaseCurrency)
	assert.Equal(t, "Send 1 Trade USDC; "+sendHash, rows[0].Description)

	_, err = SendMapper{}.ToEntries(mkSend("NOPE", "1", "", nil), sender)
	require.Error(t, err)
	assert.Equal(t, `[Viewblock] Failed to parse asset string "NOPE". type: send, txid: ABCDEF`, err.Error())

	var parseErr *assets.AssetParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestSendMapperErrors(t *testing.T) {
	_, err := SendMapper{}.ToEntries(mkSend("THOR.RUNE", "1", "", nil), "thor1stranger")
	assert.EqualError(t, err, "SendMapper: failed to determine send or receive")

	tx := mkSend("THOR.RUNE", "1", "", nil)
	tx.Msgs = append(tx.Msgs, tx.Msgs[0])
	_, err = SendMapper{}.ToEntries(tx, sender)
	assert.EqualError(t, err, "SendMapper: Expected send msgs to be 1 but was 2")
}

func TestDelegateArkeoMapper(t *testing.T) {
	rows, err := DelegateArkeoMapper{}.ToEntries(mkSend("THOR.RUNE", "100000000", "delegate:arkeo:tarkeo1", nil), sender)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, cryptotaxcalculator.Expense, rows[0].Type)
	assert.Equal(t, "RUNE", rows[0].BaseCurrency)
	assert.Equal(t, "1", rows[0].BaseAmount)
	assert.Equal(t, "0.02", rows[0].FeeAmount)
	assert.Equal(t, testIDBase+".expense", rows[0].ID)
	assert.Equal(t, "1/1 - DelegateArkeoWallet; "+sendHash, rows[0].Description)
}
