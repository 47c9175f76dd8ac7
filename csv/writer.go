package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
)

// ToCsv renders the header and rows. Newlines inside any field become "; ".
func ToCsv(rows []parsers.CsvRow, headers []string) (bytes.Buffer, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write(headers); err != nil {
		return b, fmt.Errorf("error writing header to csv: %w", err)
	}

	for _, row := range rows {
		fields := row.GetRowForCsv()
		for i := range fields {
			fields[i] = util.ReplaceNewlines(fields[i])
		}
		if err := w.Write(fields); err != nil {
			return b, fmt.Errorf("error writing record to csv: %w", err)
		}
	}

	w.Flush()

	return b, w.Error()
}

// WriteCsv writes rows to filename, newest first, with ids rewritten to
// "<file name>:<n>" counting down from the row count. Empty lists write nothing.
// The caller's slice is left untouched.
func WriteCsv(filename string, rows []cryptotaxcalculator.Row) error {
	if len(rows) == 0 {
		return nil
	}

	sorted := make([]cryptotaxcalculator.Row, len(rows))
	copy(sorted, rows)
	cryptotaxcalculator.SortDesc(sorted)
	updateIDs(sorted, filepath.Base(filename))

	b, err := ToCsv(cryptotaxcalculator.ToCsvRows(sorted), cryptotaxcalculator.GetHeaders())
	if err != nil {
		return err
	}

	config.Log.Infof("Write CSV: %s", filename)

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	return os.WriteFile(filename, b.Bytes(), 0o644)
}

func updateIDs(rows []cryptotaxcalculator.Row, prefix string) {
	id := len(rows)
	for i := range rows {
		rows[i].ID = fmt.Sprintf("%s:%d", prefix, id)
		id--
	}
}
