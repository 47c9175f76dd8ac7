package cryptotaxcalculator

import (
	"sort"

	"github.com/koitsu/thorchain-cryptotax/csv/parsers"
)

func (row Row) GetRowForCsv() []string {
	return []string{
		row.Date.UTC().Format(TimeLayout),
		row.Type.String(),
		row.BaseCurrency,
		row.BaseAmount,
		row.QuoteCurrency,
		row.QuoteAmount,
		row.FeeCurrency,
		row.FeeAmount,
		row.From,
		row.To,
		row.Blockchain,
		row.ID,
		row.Description,
		row.ReferencePricePerUnit,
		row.ReferencePriceCurrency,
	}
}

func (row Row) GetDate() string {
	return row.Date.UTC().Format(TimeLayout)
}

// SortDesc orders rows newest first. Rows sharing a timestamp keep their relative order.
func SortDesc(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
}

// ToCsvRows copies rows into the writer's row interface.
func ToCsvRows(rows []Row) []parsers.CsvRow {
	csvRows := make([]parsers.CsvRow, len(rows))
	for i := range rows {
		csvRows[i] = rows[i]
	}
	return csvRows
}
