package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/events"
	"github.com/koitsu/thorchain-cryptotax/mappers"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/viewblock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wallet = config.Wallet{Address: "thor1alice"}

func mkEvents(t *testing.T) *events.TaxEvents {
	all := events.New(mappers.Dispatcher{Logger: zerolog.Nop()}, zerolog.Nop())

	require.NoError(t, all.AddMidgard(midgard.Action{
		Date: "1609419600000000000",
		Type: midgard.TypeBond,
		In: []midgard.Transaction{{
			Address: "thor1alice",
			TxID:    "MIDGARDTX",
			Coins:   []midgard.Coin{{Asset: "THOR.RUNE", Amount: "100000000"}},
		}},
		Metadata: midgard.Metadata{Bond: &midgard.BondMetadata{NodeAddress: "thor1node"}},
	}, nil, wallet))

	require.NoError(t, all.AddViewblock(viewblock.Tx{
		Hash:      "VIEWBLOCKTX",
		Timestamp: 1609419500000,
		Types:     []string{"deposit"},
	}, wallet))

	return all
}

func TestRender(t *testing.T) {
	all := mkEvents(t)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, all.FilterByWallet(wallet), wallet))

	html := buf.String()
	assert.Contains(t, html, "<h1>thor1alice</h1>")
	assert.Contains(t, html, "<p>1 / 2</p>")
	assert.Contains(t, html, "<p>2 / 2</p>")
	assert.Contains(t, html, `href="https://thorchain.net/tx/MIDGARDTX"`)
	assert.Contains(t, html, `href="https://viewblock.io/thorchain/tx/VIEWBLOCKTX"`)
	assert.Contains(t, html, "<h2>31/12/2020 01:00:00 PM</h2>")
	assert.Contains(t, html, "<td>staking-deposit</td>")
	assert.Contains(t, html, "Reference Price Per Unit")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	filename, err := Generate(mkEvents(t), wallet, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "thor1alice.html"), filename)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<title>Report</title>")
}
