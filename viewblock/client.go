package viewblock

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/koitsu/thorchain-cryptotax/cache"
	"github.com/koitsu/thorchain-cryptotax/rest"
	"github.com/rs/zerolog"
)

const (
	BaseURL = "https://api.viewblock.io"
	Origin  = "https://viewblock.io"
)

type Client struct {
	rest    *rest.Client
	cache   cache.Store
	network string
	logger  zerolog.Logger
}

// Headers returns the request headers Viewblock expects. The api key is optional.
func Headers(apiKey string) map[string]string {
	headers := map[string]string{
		"Content-Type": "json",
		"Origin":       Origin,
	}
	if apiKey != "" {
		headers["X-APIKEY"] = apiKey
	}
	return headers
}

func NewClient(restClient *rest.Client, store cache.Store, logger zerolog.Logger) *Client {
	if store == nil {
		store = cache.Nop{}
	}
	return &Client{rest: restClient, cache: store, network: "mainnet", logger: logger.With().Str("source", "viewblock").Logger()}
}

// TotalMismatchError means the fetched pages do not add up to the reported total.
type TotalMismatchError struct {
	Total   int
	Fetched int
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("num results is %d but total should be %d", e.Fetched, e.Total)
}

func (c *Client) getTxs(ctx context.Context, address string, page int) (TxsPage, error) {
	var result TxsPage

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("network", c.network)

	err := c.rest.GetJSON(ctx, "/thorchain/addresses/"+url.PathEscape(address)+"/txs", query, &result)
	if err != nil {
		return result, fmt.Errorf("[Viewblock] getTxs page %d: %w", page, err)
	}
	return result, nil
}

// GetAllTxs returns every tx of an address across all pages. Results are cached per address.
func (c *Client) GetAllTxs(ctx context.Context, address string) ([]Tx, error) {
	var txs []Tx

	found, err := c.cache.Read(ctx, address, &txs)
	if err != nil || found {
		return txs, err
	}

	first, err := c.getTxs(ctx, address, 1)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Str("address", address).Int("total", first.Total).Msg("Fetching txs")

	if first.Total == 0 {
		c.logger.Warn().Str("address", address).Msg("No transactions")
		return []Tx{}, nil
	}

	txs = append(txs, first.Docs...)

	for page := 2; page <= first.Pages; page++ {
		c.logger.Debug().Msgf("Page %d of %d", page, first.Pages)

		next, err := c.getTxs(ctx, address, page)
		if err != nil {
			return nil, err
		}
		txs = append(txs, next.Docs...)
	}

	if len(txs) != first.Total {
		return nil, &TotalMismatchError{Total: first.Total, Fetched: len(txs)}
	}

	if err := c.cache.Write(ctx, address, txs); err != nil {
		return nil, err
	}

	return txs, nil
}
