package util

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// DefaultDecimals is the precision THORChain reports every amount in (1e8).
const DefaultDecimals int32 = 8

var baseAmountRegex = regexp.MustCompile(`^-?[0-9]+$`)

type InvalidAmountError struct {
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("Invalid base amount: %s", e.Value)
}

// BaseToAssetAmount converts an integer amount in base units into a display amount,
// shifting by the given number of decimals and trimming trailing zeros.
func BaseToAssetAmount(amount string, decimals int32) (string, error) {
	if !baseAmountRegex.MatchString(amount) {
		return "", &InvalidAmountError{Value: amount}
	}

	base, err := decimal.NewFromString(amount)
	if err != nil {
		return "", &InvalidAmountError{Value: amount}
	}

	return base.Shift(-decimals).String(), nil
}

// ToAssetAmount is BaseToAssetAmount with the default 1e8 precision.
func ToAssetAmount(amount string) (string, error) {
	return BaseToAssetAmount(amount, DefaultDecimals)
}

// MustToAssetAmount is ToAssetAmount for constants known to be valid.
func MustToAssetAmount(amount string) string {
	s, err := ToAssetAmount(amount)
	if err != nil {
		panic(err)
	}
	return s
}
