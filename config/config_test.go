package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)

func TestApplyDefaultsEmptyConfig(t *testing.T) {
	conf, err := ApplyDefaults(TaxConfig{}, now)
	require.NoError(t, err)

	assert.Equal(t, TaxConfig{
		OutputPath:             "output",
		UnsupportedActionsPath: "unsupported-actions",
		CachePath:              "cache",
		ToDate:                 "2024-03-15",
	}, conf)
}

func TestApplyDefaultsPopulatedConfig(t *testing.T) {
	populated := TaxConfig{
		FromDate:               "2020-01-01",
		ToDate:                 "2020-12-31",
		Frequency:              util.Monthly,
		CacheDataSources:       true,
		OutputPath:             "custom-output",
		UnsupportedActionsPath: "custom-unsupported-actions",
		CachePath:              "custom-cache",
		Wallets:                []Wallet{},
	}

	conf, err := ApplyDefaults(populated, now)
	require.NoError(t, err)
	assert.Equal(t, populated, conf)
}

func TestLoadTaxConfig(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "wallets.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
fromDate = "2023-01-01"
toDate = "2023-12-31"
frequency = "yearly"

[[wallets]]
address = "thor1-user-wallet-11111"
name = "main"
blockchain = "THOR"
addReferencePrices = true
`), 0o600))

	conf, err := LoadTaxConfig(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, util.Yearly, conf.Frequency)
	assert.Equal(t, "output", conf.OutputPath)
	require.Len(t, conf.Wallets, 1)
	assert.True(t, conf.Wallets[0].AddReferencePrices)
	assert.NoError(t, conf.Validate())

	jsonPath := filepath.Join(dir, "wallets.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"fromDate":"2023-01-01","toDate":"2023-06-30","wallets":[{"address":"bc1-user","name":"btc","blockchain":"BTC"}]}`), 0o600))

	conf, err = LoadTaxConfig(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "2023-06-30", conf.ToDate)

	wallet, ok := conf.Wallet("bc1-user")
	assert.True(t, ok)
	assert.Equal(t, "btc", wallet.Name)

	_, err = LoadTaxConfig(filepath.Join(dir, "wallets.yaml"))
	assert.EqualError(t, err, "unsupported config file format: .yaml")
}

func TestValidate(t *testing.T) {
	valid := TaxConfig{FromDate: "2023-01-01", ToDate: "2023-12-31", Wallets: []Wallet{{Address: "thor1abc"}}}
	assert.NoError(t, valid.Validate())

	reversed := valid
	reversed.FromDate = "2024-01-01"
	assert.EqualError(t, reversed.Validate(), "fromDate should be earlier than toDate")

	badFrequency := valid
	badFrequency.Frequency = "weekly"
	assert.Error(t, badFrequency.Validate())

	noWallets := valid
	noWallets.Wallets = nil
	assert.Error(t, noWallets.Validate())

	blankAddress := valid
	blankAddress.Wallets = []Wallet{{Name: "no address"}}
	assert.Error(t, blankAddress.Validate())
}
