package events

import (
	"testing"
	"time"

	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/mappers"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/viewblock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = config.Wallet{Address: "thor1alice", Name: "alice"}
	bob   = config.Wallet{Address: "thor1bob", Name: "bob"}
)

func newEvents() *TaxEvents {
	return New(mappers.Dispatcher{Logger: zerolog.Nop()}, zerolog.Nop())
}

func mkBond(date string) midgard.Action {
	return midgard.Action{
		Date:   date,
		Type:   midgard.TypeBond,
		Status: midgard.StatusSuccess,
		In: []midgard.Transaction{{
			Address: "thor1alice",
			TxID:    "TX" + date,
			Coins:   []midgard.Coin{{Asset: "THOR.RUNE", Amount: "100000000"}},
		}},
		Metadata: midgard.Metadata{Bond: &midgard.BondMetadata{NodeAddress: "thor1node"}},
	}
}

func mkSend(timestamp int64) viewblock.Tx {
	return viewblock.Tx{
		Hash:      "HASH",
		Timestamp: timestamp,
		Types:     []string{"send"},
		Input:     viewblock.Input{Asset: "THOR.RUNE"},
		Msgs: []viewblock.Msg{{
			Type:        viewblock.TypeMsgSend,
			FromAddress: "thor1alice",
			ToAddress:   "thor1bob",
			Amount:      []viewblock.MsgAmount{{Amount: "100000000"}},
		}},
	}
}

func TestAddMidgard(t *testing.T) {
	events := newEvents()

	require.NoError(t, events.AddMidgard(mkBond("1609419600000000000"), nil, alice))
	require.Len(t, events.Events, 1)

	event := events.Events[0]
	assert.Equal(t, SourceMidgard, event.Source)
	assert.Equal(t, time.Date(2020, 12, 31, 13, 0, 0, 0, time.UTC), event.Datetime)
	assert.Equal(t, "TX1609419600000000000", event.TxID())
	assert.Len(t, event.Output, 1)
}

func TestAddMidgardFailureIsNotKept(t *testing.T) {
	events := newEvents()

	action := mkBond("1609419600000000000")
	action.In = nil

	err := events.AddMidgard(action, nil, alice)
	var actionErr *mappers.ActionError
	assert.ErrorAs(t, err, &actionErr)
	assert.Empty(t, events.Events)
}

func TestAddViewblock(t *testing.T) {
	events := newEvents()

	require.NoError(t, events.AddViewblock(mkSend(1609419600000), bob))
	require.Len(t, events.Events, 1)
	assert.Equal(t, cryptotaxcalculator.Receive, events.Events[0].Output[0].Type)

	deposit := mkSend(1609419600000)
	deposit.Types = []string{"deposit"}
	require.NoError(t, events.AddViewblock(deposit, bob))
	require.Len(t, events.Events, 2)
	assert.Empty(t, events.Events[1].Output)

	err := events.AddViewblock(mkSend(1609419600000), config.Wallet{Address: "thor1carol"})
	assert.Error(t, err)
	assert.Len(t, events.Events, 2)
}

func TestAddTcy(t *testing.T) {
	events := newEvents()

	require.NoError(t, events.AddTcy(midgard.TcyDistributionItem{Amount: "100000000", Price: "500000000", Date: "1609419600"}, alice))
	require.Len(t, events.Events, 1)
	assert.Equal(t, SourceTcy, events.Events[0].Source)
	assert.Equal(t, "5", events.Events[0].Output[0].ReferencePricePerUnit)
}

func TestAddEventsDropsDuplicateActions(t *testing.T) {
	all := newEvents()
	require.NoError(t, all.AddMidgard(mkBond("1609419600000000000"), nil, alice))

	other := newEvents()
	require.NoError(t, other.AddMidgard(mkBond("1609419600000000000"), nil, bob))
	require.NoError(t, other.AddMidgard(mkBond("1609419700000000000"), nil, bob))
	require.NoError(t, other.AddViewblock(mkSend(1609419600000), bob))
	require.NoError(t, other.AddViewblock(mkSend(1609419600000), bob))

	assert.True(t, all.IsDuplicate(other.Events[0]))
	assert.False(t, all.IsDuplicate(other.Events[1]))
	assert.False(t, all.IsDuplicate(other.Events[2]))

	all.AddEvents(other)
	assert.Len(t, all.Events, 4)
}

func TestSortAndFilter(t *testing.T) {
	events := newEvents()
	require.NoError(t, events.AddMidgard(mkBond("1609419600000000000"), nil, alice))
	require.NoError(t, events.AddMidgard(mkBond("1609419700000000000"), nil, bob))
	require.NoError(t, events.AddMidgard(mkBond("1609419500000000000"), nil, alice))

	events.SortDesc()
	assert.Equal(t, "1609419700000000000", events.Events[0].Input.(midgard.Action).Date)
	assert.Equal(t, "1609419500000000000", events.Events[2].Input.(midgard.Action).Date)

	assert.Len(t, events.FilterByWallet(config.Wallet{Address: "THOR1ALICE"}), 2)
	assert.Len(t, events.AllEntries(), 3)
}
