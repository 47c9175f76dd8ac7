package mappers

import (
	"fmt"
)

const (
	SourceMidgard   = "Midgard"
	SourceViewblock = "Viewblock"
)

// InvalidInputCountError is returned when an action has an unexpected number of in or out legs.
type InvalidInputCountError struct {
	Mapper  string
	Message string
	Count   int
}

func (e *InvalidInputCountError) Error() string {
	return fmt.Sprintf("%s: %s", e.Mapper, e.Message)
}

// MemoResolutionError is returned when the memo is missing or names no out leg.
type MemoResolutionError struct {
	Mapper string
	Reason string
}

func (e *MemoResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Mapper, e.Reason)
}

type MapperError struct {
	Mapper  string
	Message string
}

func (e *MapperError) Error() string {
	return fmt.Sprintf("%s: %s", e.Mapper, e.Message)
}

type UnsupportedActionTypeError struct {
	Type string
}

func (e *UnsupportedActionTypeError) Error() string {
	return fmt.Sprintf("unsupported action type: %s", e.Type)
}

// ActionError adds the source, action type and tx id to a mapping failure.
type ActionError struct {
	Source string
	Type   string
	TxID   string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("[%s] %s. type: %s, txid: %s", e.Source, e.Err.Error(), e.Type, e.TxID)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// unparsableAssetError keeps the explorer wording while still unwrapping to the parser error.
type unparsableAssetError struct {
	Descriptor string
	Err        error
}

func (e *unparsableAssetError) Error() string {
	return fmt.Sprintf("Failed to parse asset string \"%s\"", e.Descriptor)
}

func (e *unparsableAssetError) Unwrap() error {
	return e.Err
}
