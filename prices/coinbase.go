package prices

import (
	"fmt"
	"time"

	"github.com/preichenberger/go-coinbasepro/v2"
	"github.com/shopspring/decimal"
)

// DailyGranularity is one candle per day, in seconds.
const DailyGranularity = 86400

type historicRatesFunc func(product string, params coinbasepro.GetHistoricRatesParams) ([]coinbasepro.HistoricRate, error)

// CoinbaseOracle uses the daily candle close of the <COIN>-USD product.
type CoinbaseOracle struct {
	getHistoricRates historicRatesFunc
}

func NewCoinbaseOracle(client *coinbasepro.Client) *CoinbaseOracle {
	if client == nil {
		client = coinbasepro.NewClient()
	}
	return &CoinbaseOracle{
		getHistoricRates: func(product string, params coinbasepro.GetHistoricRatesParams) ([]coinbasepro.HistoricRate, error) {
			return client.GetHistoricRates(product, params)
		},
	}
}

func (o *CoinbaseOracle) Price(coin string, date time.Time) (decimal.Decimal, error) {
	day := date.UTC().Truncate(24 * time.Hour)

	histRate, err := o.getHistoricRates(fmt.Sprintf("%v-USD", coin), coinbasepro.GetHistoricRatesParams{
		Start:       day,
		End:         day.Add(24 * time.Hour),
		Granularity: DailyGranularity,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to get price for coin '%v' at time '%v'. Err: %w", coin, day, err)
	}
	if len(histRate) == 0 {
		return decimal.Zero, &PriceNotFoundError{Coin: coin, Date: dayKey(day)}
	}

	return decimal.NewFromFloat(histRate[0].Close), nil
}
