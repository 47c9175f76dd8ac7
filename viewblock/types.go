// Package viewblock reads THORChain address history from the Viewblock explorer API.
package viewblock

import (
	"time"
)

const TypeMsgSend = "/types.MsgSend"

type TxsPage struct {
	Docs  []Tx        `json:"docs"`
	Limit int         `json:"limit"`
	Page  interface{} `json:"page"`
	Pages int         `json:"pages"`
	Total int         `json:"total"`
	Type  string      `json:"type"`
}

type Tx struct {
	BlockIndex int      `json:"blockIndex"`
	Code       int      `json:"code"`
	GasUsed    string   `json:"gas_used,omitempty"`
	Height     int64    `json:"height"`
	Input      Input    `json:"input"`
	Memo       string   `json:"memo,omitempty"`
	Msgs       []Msg    `json:"msgs"`
	Signer     string   `json:"signer"`
	Status     string   `json:"status"`
	Timestamp  int64    `json:"timestamp"`
	Types      []string `json:"types"`
	Hash       string   `json:"hash"`
	Gas        *Gas     `json:"gas,omitempty"`
}

type Input struct {
	Chain  string      `json:"chain"`
	Asset  string      `json:"asset"`
	Amount string      `json:"amount"`
	Type   interface{} `json:"type"`
}

type Msg struct {
	Type        string      `json:"@type"`
	FromAddress string      `json:"from_address"`
	ToAddress   string      `json:"to_address"`
	Amount      []MsgAmount `json:"amount"`
}

type MsgAmount struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type Gas struct {
	Amount string `json:"amount"`
	Asset  string `json:"asset"`
}

// Time is the tx timestamp (milliseconds since epoch) in UTC.
func (tx Tx) Time() time.Time {
	return time.UnixMilli(tx.Timestamp).UTC()
}

func (tx Tx) HasType(name string) bool {
	for _, t := range tx.Types {
		if t == name {
			return true
		}
	}
	return false
}

// SendMsgs returns the bank send messages of the tx.
func (tx Tx) SendMsgs() []Msg {
	var msgs []Msg
	for _, msg := range tx.Msgs {
		if msg.Type == TypeMsgSend {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
