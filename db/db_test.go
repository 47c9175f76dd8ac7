package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/stretchr/testify/assert"
)

func mkRow() cryptotaxcalculator.Row {
	return cryptotaxcalculator.Row{
		WalletExchange:         "thor1alice",
		Date:                   time.Date(2020, 12, 31, 13, 0, 0, 0, time.UTC),
		Type:                   cryptotaxcalculator.StakingDeposit,
		BaseCurrency:           "RUNE",
		BaseAmount:             "1",
		FeeCurrency:            "RUNE",
		FeeAmount:              "0.02",
		From:                   "thor1alice",
		To:                     "thorchain",
		Blockchain:             "THOR",
		ID:                     "2020-12-31T13:00:00.000Z.bond",
		Description:            "1/1 - Bond RUNE to thor1node; TX",
		ReferencePricePerUnit:  "1.5",
		ReferencePriceCurrency: "USD",
	}
}

func TestEntryRoundTrip(t *testing.T) {
	row := mkRow()
	entry := EntryFromRow(row)

	assert.Equal(t, "thor1alice", entry.Address.Address)
	assert.Equal(t, "staking-deposit", entry.Type)
	assert.Equal(t, row, entry.Row())
}

func TestEntryHash(t *testing.T) {
	row := mkRow()
	assert.Len(t, EntryHash(row), 64)

	renumbered := row
	renumbered.ID = "all.csv:12"
	assert.Equal(t, EntryHash(row), EntryHash(renumbered))

	otherWallet := row
	otherWallet.WalletExchange = "thor1bob"
	assert.NotEqual(t, EntryHash(row), EntryHash(otherWallet))
}

func TestNewExportRun(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	run := NewExportRun("2023-01-01", "2023-12-31", now)

	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, now.UTC(), run.StartedAt)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Nil(t, run.FinishedAt)
}
