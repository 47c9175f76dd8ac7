package prices

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/shopspring/decimal"
)

// DailyClose is one row of a <COIN>.json price table.
type DailyClose struct {
	Date  string          `json:"Date"`
	Close decimal.Decimal `json:"Close"`
}

// TableOracle answers from price tables held in memory, keyed by coin then dd-MM-yyyy.
type TableOracle struct {
	data map[string]map[string]decimal.Decimal
}

func NewTableOracle(tables map[string][]DailyClose) *TableOracle {
	o := &TableOracle{data: map[string]map[string]decimal.Decimal{}}
	for coin, rows := range tables {
		o.add(coin, rows)
	}
	return o
}

func (o *TableOracle) add(coin string, rows []DailyClose) {
	byDate := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row.Close
	}
	o.data[strings.ToUpper(coin)] = byDate
}

// LoadTableOracle reads every <COIN>.json file in dir.
func LoadTableOracle(dir string) (*TableOracle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	o := &TableOracle{data: map[string]map[string]decimal.Decimal{}}
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".json" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var rows []DailyClose
		if err := json.Unmarshal(content, &rows); err != nil {
			return nil, fmt.Errorf("error decoding price table %s: %w", path, err)
		}

		coin := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		o.add(coin, rows)
		config.Log.Debugf("Loaded %d prices for %s", len(rows), coin)
	}

	return o, nil
}

func (o *TableOracle) Price(coin string, date time.Time) (decimal.Decimal, error) {
	byDate, ok := o.data[coin]
	if !ok {
		return decimal.Zero, &NoPricesError{Coin: coin}
	}

	key := dayKey(date)
	price, ok := byDate[key]
	if !ok {
		return decimal.Zero, &PriceNotFoundError{Coin: coin, Date: key}
	}

	return price, nil
}
