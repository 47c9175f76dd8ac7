package csv

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
)

const (
	// ThorchainLedger is the walletExchange of the internal swap ledger.
	ThorchainLedger = "thorchain"
	MissingAddress  = "MISSING-ADDRESS"
)

type ExportCountMismatchError struct {
	Expected int
	Written  int
}

func (e *ExportCountMismatchError) Error() string {
	return fmt.Sprintf("failed to export all txs. expected %d", e.Expected)
}

// UnattributedEntriesError reports rows of the thorchain ledger where neither side is the ledger.
type UnattributedEntriesError struct {
	Count int
}

func (e *UnattributedEntriesError) Error() string {
	return fmt.Sprintf("bad txs: %d thorchain entries have neither from nor to set to %s", e.Count, ThorchainLedger)
}

// SaveToCsv writes all.csv, one file per date range and one file per walletExchange per range.
// It returns the number of rows written to the per-wallet files.
func SaveToCsv(rows []cryptotaxcalculator.Row, outputPath string, conf config.TaxConfig) (int, error) {
	if err := WriteCsv(filepath.Join(outputPath, "all.csv"), rows); err != nil {
		return 0, err
	}

	ranges, err := util.GenerateDateRanges(conf.FromDate, conf.ToDate, conf.Frequency)
	if err != nil {
		return 0, err
	}

	walletExchanges := uniqueWalletExchanges(rows)
	expected := 0
	count := 0

	for _, dateRange := range ranges {
		rangeRows := rowsInRange(rows, dateRange)
		expected += len(rangeRows)

		fn := fmt.Sprintf("all-%s_%s.csv", dateRange.From, dateRange.To)
		if err := WriteCsv(filepath.Join(outputPath, fn), rangeRows); err != nil {
			return count, err
		}

		if len(rangeRows) == 0 {
			continue
		}

		for _, walletExchange := range walletExchanges {
			walletRows := rowsForWallet(rangeRows, walletExchange)
			if len(walletRows) == 0 {
				continue
			}

			var name string
			if walletExchange == ThorchainLedger {
				if bad := countUnattributed(walletRows); bad > 0 {
					return count, &UnattributedEntriesError{Count: bad}
				}
				name = fmt.Sprintf("%s_%s_THOR_thorchain_swaps", dateRange.From, dateRange.To)
			} else {
				name = makeFilename(conf, walletExchange, dateRange)
			}

			if err := WriteCsv(filepath.Join(outputPath, name+".csv"), walletRows); err != nil {
				return count, err
			}
			count += len(walletRows)
		}
	}

	config.Log.Infof("Total exported: %d", count)

	return count, verifyExportCount(expected, count)
}

// verifyExportCount checks that every in-range row landed in exactly one wallet file.
func verifyExportCount(expected, written int) error {
	if written != expected {
		return &ExportCountMismatchError{Expected: expected, Written: written}
	}
	return nil
}

func walletExchangeOf(row cryptotaxcalculator.Row) string {
	if row.WalletExchange == "" {
		return MissingAddress
	}
	return row.WalletExchange
}

// uniqueWalletExchanges keeps first-seen order so output is deterministic.
func uniqueWalletExchanges(rows []cryptotaxcalculator.Row) []string {
	seen := map[string]bool{}
	var result []string
	for _, row := range rows {
		we := walletExchangeOf(row)
		if row.WalletExchange == "" && !seen[we] {
			config.Log.Warnf("missing walletExchange: %s %s", row.ID, row.Description)
		}
		if !seen[we] {
			seen[we] = true
			result = append(result, we)
		}
	}
	return result
}

func rowsInRange(rows []cryptotaxcalculator.Row, dateRange util.DateRange) []cryptotaxcalculator.Row {
	var result []cryptotaxcalculator.Row
	for _, row := range rows {
		if dateRange.Contains(row.Date) {
			result = append(result, row)
		}
	}
	return result
}

func rowsForWallet(rows []cryptotaxcalculator.Row, walletExchange string) []cryptotaxcalculator.Row {
	var result []cryptotaxcalculator.Row
	for _, row := range rows {
		if walletExchangeOf(row) == walletExchange {
			result = append(result, row)
		}
	}
	return result
}

func countUnattributed(rows []cryptotaxcalculator.Row) int {
	bad := 0
	for _, row := range rows {
		if row.From != ThorchainLedger && row.To != ThorchainLedger {
			bad++
		}
	}
	return bad
}

func makeFilename(conf config.TaxConfig, walletExchange string, dateRange util.DateRange) string {
	wallet, ok := conf.Wallet(walletExchange)
	if !ok {
		config.Log.Warnf("wallet not found in config: %s", walletExchange)
		return fmt.Sprintf("%s_%s_%s", dateRange.From, dateRange.To, walletExchange)
	}

	return strings.Join([]string{
		dateRange.From,
		dateRange.To,
		wallet.Blockchain,
		util.ShortenAddress(wallet.Address),
		wallet.Name,
	}, "_")
}
