// Package assets parses THORChain asset descriptors (CHAIN.TICKER, CHAIN/TICKER, CHAIN~TICKER)
// into the blockchain and currency names CryptoTaxCalculator recognises.
package assets

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	RuneAsset   = "THOR.RUNE"
	StableAsset = "THOR.TOR"
)

type Kind int

const (
	Native Kind = iota
	Synth
	Trade
)

type Asset struct {
	Blockchain string
	Currency   string
}

// String renders the asset in canonical dotted form.
func (a Asset) String() string {
	return a.Blockchain + "." + a.Currency
}

type AssetParseError struct {
	Descriptor string
}

func (e *AssetParseError) Error() string {
	return fmt.Sprintf("Failed to parse asset string: \"%s\"", e.Descriptor)
}

// Tickers that CryptoTaxCalculator knows under a different symbol.
var tickerRenames = map[string]string{
	"THOR-0XA5F2211B9B8170F694421F2046281775E8468044": "THOR", // THORSwap token (ETH.THOR)
	"LUNA":     "LUNC",
	"BUSD-BD1": "BUSD", // BNB.BUSD
	"ETH-1C9":  "ETH",  // BNB.ETH
	"RUNE-B1A": "RUNE", // BNB.RUNE
	"USDC-0XB97EF9EF8734C71904D8002F8B6BC66DD9C48A6E": "USDC", // AVAX.USDC
}

// Parse splits a Midgard asset descriptor into blockchain and currency and applies the ticker renames.
// Contract-qualified tickers (containing - . /) that are not in the rename table are rejected.
func Parse(descriptor string) (Asset, error) {
	sep := "/"
	if strings.Contains(descriptor, ".") {
		sep = "."
	}

	parts := strings.Split(descriptor, sep)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Asset{}, &AssetParseError{Descriptor: descriptor}
	}

	currency, ok := rename(parts[1])
	if !ok {
		return Asset{}, &AssetParseError{Descriptor: descriptor}
	}

	return Asset{Blockchain: parts[0], Currency: currency}, nil
}

func rename(currency string) (string, bool) {
	if renamed, ok := tickerRenames[currency]; ok {
		return renamed, true
	}

	if strings.ContainsAny(currency, "-./") {
		return "", false
	}

	return currency, true
}

// ParsePool renders a pool descriptor as CHAIN.TICKER.
func ParsePool(pool string) (string, error) {
	asset, err := Parse(pool)
	if err != nil {
		return "", err
	}
	return asset.String(), nil
}

// ParseAny accepts native, synth and trade descriptors and returns the bare ticker as currency.
// Contract suffixes are dropped rather than rejected (ETH.USDT-0X... is USDT).
func ParseAny(descriptor string) (Asset, Kind, error) {
	kind := Native
	sep := "."

	switch {
	case strings.Contains(descriptor, "~"):
		kind, sep = Trade, "~"
	case strings.Contains(descriptor, "/"):
		kind, sep = Synth, "/"
	}

	parts := strings.SplitN(descriptor, sep, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Asset{}, kind, &AssetParseError{Descriptor: descriptor}
	}

	symbol := parts[1]
	currency, ok := tickerRenames[symbol]
	if !ok {
		currency, _, _ = strings.Cut(symbol, "-")
	}

	if currency == "" || strings.ContainsAny(currency, "./~") {
		return Asset{}, kind, &AssetParseError{Descriptor: descriptor}
	}

	return Asset{Blockchain: parts[0], Currency: currency}, kind, nil
}

func IsSynth(descriptor string) bool {
	return strings.Contains(descriptor, "/")
}

// ParseDate converts a Midgard nanosecond timestamp to a UTC time truncated to milliseconds.
func ParseDate(nanos string) (time.Time, error) {
	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid action date %q: %w", nanos, err)
	}
	return time.UnixMilli(n / int64(time.Millisecond)).UTC(), nil
}
