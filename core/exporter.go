// Package core runs the export pipeline: fetch each wallet's history, map it, report it and write the CSV files.
package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/csv"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/events"
	"github.com/koitsu/thorchain-cryptotax/mappers"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/report"
	"github.com/koitsu/thorchain-cryptotax/thornode"
	"github.com/koitsu/thorchain-cryptotax/viewblock"
	"github.com/rs/zerolog"
)

type ActionSource interface {
	GetActions(ctx context.Context, address string) ([]midgard.Action, error)
	GetTcyDistribution(ctx context.Context, address string) (midgard.TcyDistribution, error)
}

type TxStatusSource interface {
	GetTxStatus(ctx context.Context, hash string) (thornode.TxStatusResponse, error)
}

type TxSource interface {
	GetAllTxs(ctx context.Context, address string) ([]viewblock.Tx, error)
}

// CacheClearer drops cached upstream responses.
type CacheClearer interface {
	ClearAll() error
}

// RunRecorder stores the outcome of an export.
type RunRecorder interface {
	Record(conf config.TaxConfig, rows []cryptotaxcalculator.Row, written, failures int, runErr error) error
}

type Exporter struct {
	Config     config.TaxConfig
	Midgard    ActionSource
	Thornode   TxStatusSource
	Viewblock  TxSource
	Dispatcher mappers.Dispatcher
	Caches     []CacheClearer
	Recorder   RunRecorder
	Report     bool
	Logger     zerolog.Logger
}

type Result struct {
	Events   *events.TaxEvents
	Entries  int
	Written  int
	Failures int
}

// CsvPath is where the CSV files of an export are written.
func (e *Exporter) CsvPath() string {
	return filepath.Join(e.Config.OutputPath, "csv")
}

// Run exports every configured wallet. Unmappable inputs are saved as failure files and do not stop the run.
func (e *Exporter) Run(ctx context.Context) (Result, error) {
	result, err := e.run(ctx)

	if e.Recorder != nil {
		var rows []cryptotaxcalculator.Row
		if result.Events != nil {
			rows = result.Events.AllEntries()
		}
		if recErr := e.Recorder.Record(e.Config, rows, result.Written, result.Failures, err); recErr != nil {
			e.Logger.Error().Err(recErr).Msg("Error recording export run")
			if err == nil {
				err = recErr
			}
		}
	}

	return result, err
}

func (e *Exporter) run(ctx context.Context) (Result, error) {
	var result Result

	if !e.Config.CacheDataSources {
		for _, c := range e.Caches {
			if err := c.ClearAll(); err != nil {
				return result, fmt.Errorf("error clearing cache: %w", err)
			}
		}
	}

	all := events.New(e.Dispatcher, e.Logger)

	for _, wallet := range e.Config.Wallets {
		walletEvents, failures, err := e.GetEvents(ctx, wallet)
		if err != nil {
			return result, err
		}
		result.Failures += failures

		walletEvents.SortDesc()

		// Reported before merging so shared actions show up in every wallet taking part.
		if e.Report {
			filename, err := report.Generate(walletEvents, wallet, e.Config.OutputPath)
			if err != nil {
				return result, fmt.Errorf("error writing report for %s: %w", wallet.Address, err)
			}
			e.Logger.Info().Str("wallet", wallet.Address).Str("file", filename).Msg("Wrote report")
		}

		all.AddEvents(walletEvents)
	}

	all.SortDesc()
	result.Events = all

	rows := all.AllEntries()
	result.Entries = len(rows)

	written, err := csv.SaveToCsv(rows, e.CsvPath(), e.Config)
	result.Written = written
	if err != nil {
		return result, err
	}

	e.Logger.Info().Int("entries", result.Entries).Int("written", written).Int("failures", result.Failures).Msg("Total exported")

	return result, nil
}

// GetEvents fetches and maps the history of one wallet. The returned count is the number of inputs saved as failures.
func (e *Exporter) GetEvents(ctx context.Context, wallet config.Wallet) (*events.TaxEvents, int, error) {
	walletEvents := events.New(e.Dispatcher, e.Logger)
	failures := 0

	fail := func(source events.Source, date time.Time, data any, err error) {
		failures++
		e.Logger.Error().Err(err).Str("wallet", wallet.Address).Str("source", string(source)).Msg("Failed to map input")
		if _, saveErr := SaveFailure(e.Config.OutputPath, wallet.Address, source, date, data, err); saveErr != nil {
			e.Logger.Error().Err(saveErr).Msg("Error saving failure")
		}
	}

	if e.Viewblock != nil {
		txs, err := e.Viewblock.GetAllTxs(ctx, wallet.Address)
		if err != nil {
			return nil, failures, err
		}

		for _, tx := range txs {
			if err := walletEvents.AddViewblock(tx, wallet); err != nil {
				fail(events.SourceViewblock, tx.Time(), tx, err)
			}
		}
	}

	actions, err := e.Midgard.GetActions(ctx, wallet.Address)
	if err != nil {
		return nil, failures, err
	}

	for _, action := range ExcludeNonSuccess(actions) {
		thornodeTxs, err := e.relatedThornodeTxs(ctx, action)
		if err == nil {
			err = walletEvents.AddMidgard(action, thornodeTxs, wallet)
		}
		if err != nil {
			date, _ := assets.ParseDate(action.Date)
			fail(events.SourceMidgard, date, action, err)
		}
	}

	distribution, err := e.Midgard.GetTcyDistribution(ctx, wallet.Address)
	if err != nil {
		return nil, failures, err
	}

	for _, item := range distribution.Distributions {
		if err := walletEvents.AddTcy(item, wallet); err != nil {
			date, _ := mappers.TcyDistributionDate(item)
			fail(events.SourceTcy, date, item, err)
		}
	}

	return walletEvents, failures, nil
}

// relatedThornodeTxs fetches the thornode tx of noOp swaps (loans opened with TOR) and switches.
func (e *Exporter) relatedThornodeTxs(ctx context.Context, action midgard.Action) ([]thornode.TxStatusResponse, error) {
	if e.Thornode == nil {
		return nil, nil
	}
	if action.TxType() != midgard.TxTypeNoOp && action.Type != midgard.TypeSwitch {
		return nil, nil
	}

	status, err := e.Thornode.GetTxStatus(ctx, action.FirstInTxID())
	if err != nil {
		return nil, err
	}
	return []thornode.TxStatusResponse{status}, nil
}

// ExcludeNonSuccess drops pending and failed actions. Loan repayments stay pending until the loan closes
// and are kept.
func ExcludeNonSuccess(actions []midgard.Action) []midgard.Action {
	var kept []midgard.Action
	for _, action := range actions {
		if action.Status == midgard.StatusSuccess || action.TxType() == midgard.TxTypeLoanRepayment {
			kept = append(kept, action)
		}
	}
	return kept
}
