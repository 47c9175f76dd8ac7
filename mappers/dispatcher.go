package mappers

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/prices"
	"github.com/koitsu/thorchain-cryptotax/thornode"
	"github.com/rs/zerolog"
)

const (
	OutcomeMapped      = "mapped"
	OutcomeUnsupported = "unsupported"
	OutcomeFailed      = "failed"
	OutcomeDuplicate   = "duplicate"
)

// Select picks the mapper for an action, or nil when the action is not supported.
func Select(action midgard.Action) Mapper {
	switch action.Type {
	case midgard.TypeSwap:
		switch action.TxType() {
		case midgard.TxTypeLoanOpen:
			return LoanOpenMapper{}
		case midgard.TxTypeLoanRepayment:
			return LoanRepaymentMapper{}
		case midgard.TxTypeNoOp:
			// Loans opened with TOR show up as noOp swaps.
			if action.FirstInAsset() == assets.StableAsset {
				return LoanOpenMapper{}
			}
		}
		return SwapMapper{}
	case midgard.TypeAddLiquidity:
		return AddLiquidityMapper{}
	case midgard.TypeWithdraw:
		return WithdrawMapper{}
	case midgard.TypeSwitch:
		return SwitchMapper{}
	case midgard.TypeRefund:
		return RefundMapper{}
	case midgard.TypeBond:
		return BondMapper{}
	case midgard.TypeUnbond:
		return UnbondMapper{}
	case midgard.TypeThorname:
		return ThornameMapper{}
	case midgard.TypeTcyClaim:
		return TcyClaimMapper{}
	case midgard.TypeTcyStake:
		return TcyStakeMapper{}
	case midgard.TypeTcyUnstake:
		return TcyUnstakeMapper{}
	case midgard.TypeRunePoolDeposit:
		return RunePoolDepositMapper{}
	case midgard.TypeRunePoolWithdraw:
		return RunePoolWithdrawMapper{}
	case midgard.TypeContract:
		if action.ContractType() == ContractRujiraMergeDeposit {
			return RujiraMergeDepositMapper{}
		}
	}
	return nil
}

// UnsupportedSink archives actions no mapper handles.
type UnsupportedSink interface {
	Save(action midgard.Action) error
}

// FileSink writes each unsupported action to <Dir>/<type>/<txID or ISO date>.json.
type FileSink struct {
	Dir string
}

func (s FileSink) Save(action midgard.Action) error {
	name := action.FirstInTxID()
	if name == "" {
		date, err := assets.ParseDate(action.Date)
		if err != nil {
			return err
		}
		name = IDPrefix(date)
	}

	dir := filepath.Join(s.Dir, action.Type)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(action, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, name+".json"), data, 0o600)
}

// Dispatcher maps Midgard actions, archiving the unsupported ones.
type Dispatcher struct {
	Unsupported UnsupportedSink
	Prices      prices.Oracle
	Logger      zerolog.Logger
}

// MapAction validates the action and runs its mapper. Unsupported actions give an empty list and no error.
// Mapper failures are returned as *ActionError.
func (d Dispatcher) MapAction(action midgard.Action, addReferencePrices bool, thornodeTxs []thornode.TxStatusResponse) ([]cryptotaxcalculator.Row, error) {
	txID := action.FirstInTxID()
	logger := d.Logger.With().Str("action_type", action.Type).Str("tx_id", txID).Logger()

	fail := func(mapperName string, err error) ([]cryptotaxcalculator.Row, error) {
		if data, jsonErr := json.Marshal(action); jsonErr == nil {
			logger.Debug().RawJSON("action", data).Msg("failed action")
		}
		logger.Warn().Err(err).Str("mapper", mapperName).Str("outcome", OutcomeFailed).Msg("mapping failed")
		return nil, &ActionError{Source: SourceMidgard, Type: action.Type, TxID: txID, Err: err}
	}

	if err := action.Validate(); err != nil {
		return fail("", err)
	}

	mapper := Select(action)
	if mapper == nil {
		unsupported := &UnsupportedActionTypeError{Type: action.Type}
		if d.Unsupported != nil {
			if err := d.Unsupported.Save(action); err != nil {
				logger.Error().Err(err).Msg("failed to archive unsupported action")
			}
		}
		logger.Info().Str("outcome", OutcomeUnsupported).Msg(unsupported.Error())
		return []cryptotaxcalculator.Row{}, nil
	}

	c, err := NewContext(action, addReferencePrices, thornodeTxs, d.Prices)
	if err != nil {
		return fail(mapper.Name(), err)
	}

	rows, err := mapper.ToEntries(c)
	if err != nil {
		return fail(mapper.Name(), err)
	}

	logger.Debug().Str("mapper", mapper.Name()).Int("entries", len(rows)).Str("outcome", OutcomeMapped).Msg("mapped action")
	return rows, nil
}
