package assets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		descriptor string
		expected   Asset
	}{
		{"BTC.BTC", Asset{"BTC", "BTC"}},
		{"BTC/BTC", Asset{"BTC", "BTC"}},
		{"THOR.RUNE", Asset{"THOR", "RUNE"}},
		{"TERRA.LUNA", Asset{"TERRA", "LUNC"}},
		{"BNB.BUSD-BD1", Asset{"BNB", "BUSD"}},
		{"BNB.ETH-1C9", Asset{"BNB", "ETH"}},
		{"BNB.RUNE-B1A", Asset{"BNB", "RUNE"}},
		{"ETH.THOR-0XA5F2211B9B8170F694421F2046281775E8468044", Asset{"ETH", "THOR"}},
		{"AVAX.USDC-0XB97EF9EF8734C71904D8002F8B6BC66DD9C48A6E", Asset{"AVAX", "USDC"}},
	}

	for _, tt := range tests {
		asset, err := Parse(tt.descriptor)
		require.NoError(t, err, tt.descriptor)
		assert.Equal(t, tt.expected, asset, tt.descriptor)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, descriptor := range []string{"INVALID", "", "BTC.", ".BTC", "A.B.C", "ETH.USDT-0XDAC17F958D2EE523A2206206994597C13D831EC7"} {
		_, err := Parse(descriptor)
		require.Error(t, err, descriptor)

		var parseErr *AssetParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, descriptor, parseErr.Descriptor)
	}

	_, err := Parse("INVALID")
	assert.EqualError(t, err, `Failed to parse asset string: "INVALID"`)
}

func TestParsePool(t *testing.T) {
	pool, err := ParsePool("BNB.BUSD-BD1")
	require.NoError(t, err)
	assert.Equal(t, "BNB.BUSD", pool)

	pool, err = ParsePool("BTC/BTC")
	require.NoError(t, err)
	assert.Equal(t, "BTC.BTC", pool)
}

func TestParseAny(t *testing.T) {
	asset, kind, err := ParseAny("DOGE/DOGE")
	require.NoError(t, err)
	assert.Equal(t, Synth, kind)
	assert.Equal(t, "DOGE", asset.Currency)

	asset, kind, err = ParseAny("ETH~USDT-0XDAC17F958D2EE523A2206206994597C13D831EC7")
	require.NoError(t, err)
	assert.Equal(t, Trade, kind)
	assert.Equal(t, "USDT", asset.Currency)

	asset, kind, err = ParseAny("THOR.RUNE")
	require.NoError(t, err)
	assert.Equal(t, Native, kind)
	assert.Equal(t, Asset{"THOR", "RUNE"}, asset)

	_, _, err = ParseAny("TCY")
	assert.EqualError(t, err, `Failed to parse asset string: "TCY"`)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("1609419600000000000")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 12, 31, 13, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}
