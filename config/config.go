package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/imdario/mergo"
	"github.com/koitsu/thorchain-cryptotax/util"
)

// TaxConfig describes which wallets to export and how to partition the output.
type TaxConfig struct {
	FromDate               string         `toml:"fromDate" json:"fromDate"`
	ToDate                 string         `toml:"toDate" json:"toDate"`
	Frequency              util.Frequency `toml:"frequency" json:"frequency"`
	CacheDataSources       bool           `toml:"cacheDataSources" json:"cacheDataSources"`
	OutputPath             string         `toml:"outputPath" json:"outputPath"`
	UnsupportedActionsPath string         `toml:"unsupportedActionsPath" json:"unsupportedActionsPath"`
	CachePath              string         `toml:"cachePath" json:"cachePath"`
	Wallets                []Wallet       `toml:"wallets" json:"wallets"`
}

type Wallet struct {
	Address            string `toml:"address" json:"address"`
	Name               string `toml:"name" json:"name"`
	Blockchain         string `toml:"blockchain" json:"blockchain"`
	AddReferencePrices bool   `toml:"addReferencePrices" json:"addReferencePrices"`
}

// LoadTaxConfig reads a TOML or JSON wallets file (chosen by extension) and applies the defaults.
func LoadTaxConfig(filename string) (TaxConfig, error) {
	var conf TaxConfig

	Log.Infof("Wallets config file: %s", filename)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(filename, &conf); err != nil {
			return conf, fmt.Errorf("error decoding %s: %w", filename, err)
		}
	case ".json":
		content, err := os.ReadFile(filename)
		if err != nil {
			return conf, err
		}
		if err := json.Unmarshal(content, &conf); err != nil {
			return conf, fmt.Errorf("error decoding %s: %w", filename, err)
		}
	default:
		return conf, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return ApplyDefaults(conf, time.Now())
}

// ApplyDefaults fills the unset paths and the end date. Values already present are kept.
func ApplyDefaults(conf TaxConfig, now time.Time) (TaxConfig, error) {
	defaults := TaxConfig{
		OutputPath:             "output",
		UnsupportedActionsPath: "unsupported-actions",
		CachePath:              "cache",
		ToDate:                 now.UTC().Format(util.DateLayout),
	}

	if err := mergo.Merge(&conf, defaults); err != nil {
		return conf, err
	}

	return conf, nil
}

func (conf TaxConfig) Validate() error {
	if util.StrNotSet(conf.FromDate) {
		return errors.New("fromDate must be set")
	}

	from, err := time.Parse(util.DateLayout, conf.FromDate)
	if err != nil {
		return fmt.Errorf("invalid fromDate %q: %w", conf.FromDate, err)
	}

	to, err := time.Parse(util.DateLayout, conf.ToDate)
	if err != nil {
		return fmt.Errorf("invalid toDate %q: %w", conf.ToDate, err)
	}

	if from.After(to) {
		return errors.New("fromDate should be earlier than toDate")
	}

	if conf.Frequency != "" && !conf.Frequency.Valid() {
		return fmt.Errorf("invalid frequency %q", conf.Frequency)
	}

	if len(conf.Wallets) == 0 {
		return errors.New("at least one wallet must be configured")
	}

	for i, wallet := range conf.Wallets {
		if util.StrNotSet(wallet.Address) {
			return fmt.Errorf("wallet %d has no address", i)
		}
	}

	return nil
}

// Wallet looks up a configured wallet by address, ignoring case.
func (conf TaxConfig) Wallet(address string) (Wallet, bool) {
	for _, wallet := range conf.Wallets {
		if strings.EqualFold(wallet.Address, address) {
			return wallet, true
		}
	}
	return Wallet{}, false
}
