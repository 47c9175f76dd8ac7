// Package events collects the mapped history of every wallet before it is exported.
package events

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/mappers"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/thornode"
	"github.com/koitsu/thorchain-cryptotax/viewblock"
	"github.com/rs/zerolog"
)

type Source string

const (
	SourceViewblock Source = "viewblock"
	SourceMidgard   Source = "midgard"
	SourceTcy       Source = "tcy"
)

// TaxEvent is one upstream record of a wallet and the rows derived from it.
// Input holds a viewblock.Tx, a midgard.Action or a midgard.TcyDistributionItem depending on Source.
type TaxEvent struct {
	Datetime    time.Time
	Source      Source
	Input       any
	ThornodeTxs []thornode.TxStatusResponse
	Output      []cryptotaxcalculator.Row
	Wallet      config.Wallet
}

// TxID is the explorer id of the event input, or "".
func (e *TaxEvent) TxID() string {
	switch input := e.Input.(type) {
	case viewblock.Tx:
		return input.Hash
	case midgard.Action:
		return input.FirstInTxID()
	}
	return ""
}

type TaxEvents struct {
	Events []*TaxEvent

	dispatcher mappers.Dispatcher
	logger     zerolog.Logger
}

func New(dispatcher mappers.Dispatcher, logger zerolog.Logger) *TaxEvents {
	return &TaxEvents{dispatcher: dispatcher, logger: logger}
}

// AddViewblock maps an explorer tx. Txs without a mapper are kept with no output.
func (e *TaxEvents) AddViewblock(tx viewblock.Tx, wallet config.Wallet) error {
	event := &TaxEvent{Datetime: tx.Time(), Source: SourceViewblock, Input: tx, Wallet: wallet}

	if mapper := mappers.SelectViewblock(tx); mapper != nil {
		rows, err := mapper.ToEntries(tx, wallet.Address)
		if err != nil {
			return err
		}
		event.Output = rows
	}

	e.Events = append(e.Events, event)
	return nil
}

func (e *TaxEvents) AddMidgard(action midgard.Action, thornodeTxs []thornode.TxStatusResponse, wallet config.Wallet) error {
	date, err := assets.ParseDate(action.Date)
	if err != nil {
		return err
	}

	rows, err := e.dispatcher.MapAction(action, wallet.AddReferencePrices, thornodeTxs)
	if err != nil {
		return err
	}

	e.Events = append(e.Events, &TaxEvent{
		Datetime:    date,
		Source:      SourceMidgard,
		Input:       action,
		ThornodeTxs: thornodeTxs,
		Output:      rows,
		Wallet:      wallet,
	})
	return nil
}

func (e *TaxEvents) AddTcy(item midgard.TcyDistributionItem, wallet config.Wallet) error {
	date, err := mappers.TcyDistributionDate(item)
	if err != nil {
		return err
	}

	rows, err := mappers.TcyDistributionToEntries(item, wallet.Address)
	if err != nil {
		return err
	}

	e.Events = append(e.Events, &TaxEvent{Datetime: date, Source: SourceTcy, Input: item, Output: rows, Wallet: wallet})
	return nil
}

// IsDuplicate reports whether a Midgard event with the same action is already held.
// The same action is returned for every address taking part in it.
func (e *TaxEvents) IsDuplicate(candidate *TaxEvent) bool {
	if candidate.Source != SourceMidgard {
		return false
	}

	action, ok := candidate.Input.(midgard.Action)
	if !ok {
		return false
	}

	for _, event := range e.Events {
		if event.Source != SourceMidgard {
			continue
		}
		held, ok := event.Input.(midgard.Action)
		if !ok || held.Date != action.Date {
			continue
		}
		if reflect.DeepEqual(held, action) {
			if data, err := json.Marshal(action); err == nil {
				e.logger.Debug().RawJSON("action", data).Str("outcome", mappers.OutcomeDuplicate).Msg("Excluding duplicate action")
			}
			return true
		}
	}

	return false
}

// AddEvents merges other into e, dropping duplicate Midgard actions.
func (e *TaxEvents) AddEvents(other *TaxEvents) {
	for _, event := range other.Events {
		if e.IsDuplicate(event) {
			continue
		}
		e.Events = append(e.Events, event)
	}
}

// SortDesc orders events newest first. Events at the same time keep their order.
func (e *TaxEvents) SortDesc() {
	sort.SliceStable(e.Events, func(i, j int) bool {
		return e.Events[i].Datetime.After(e.Events[j].Datetime)
	})
}

func (e *TaxEvents) AllEntries() []cryptotaxcalculator.Row {
	var rows []cryptotaxcalculator.Row
	for _, event := range e.Events {
		rows = append(rows, event.Output...)
	}
	return rows
}

func (e *TaxEvents) FilterByWallet(wallet config.Wallet) []*TaxEvent {
	var filtered []*TaxEvent
	for _, event := range e.Events {
		if strings.EqualFold(event.Wallet.Address, wallet.Address) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}
