// Package thornode fetches tx status records from a THORNode API, falling back to the archive node
// for transactions the current node no longer serves.
package thornode

import (
	"context"
	"errors"
	"fmt"

	"github.com/koitsu/thorchain-cryptotax/cache"
	"github.com/koitsu/thorchain-cryptotax/rest"
	"github.com/rs/zerolog"
)

const ArchiveURL = "https://thornode-v1.ninerealms.com/"

type TxStatusResponse struct {
	Tx     *Tx  `json:"tx,omitempty"`
	OutTxs []Tx `json:"out_txs,omitempty"`
}

type Tx struct {
	ID          string `json:"id"`
	Chain       string `json:"chain"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Coins       []Coin `json:"coins"`
	Gas         []Coin `json:"gas"`
	Memo        string `json:"memo"`
}

// Coin amounts are 1e8 integers regardless of Decimals, which records the native precision of the asset.
type Coin struct {
	Asset    string `json:"asset"`
	Amount   string `json:"amount"`
	Decimals int32  `json:"decimals,omitempty"`
}

var ErrNoHash = errors.New("No transaction hash")

type Client struct {
	rest    *rest.Client
	archive *rest.Client
	cache   cache.Store
	logger  zerolog.Logger
}

// NewClient builds a client for the current node. archive may be nil to disable the fallback.
func NewClient(current, archive *rest.Client, store cache.Store, logger zerolog.Logger) *Client {
	if store == nil {
		store = cache.Nop{}
	}
	return &Client{rest: current, archive: archive, cache: store, logger: logger.With().Str("source", "thornode").Logger()}
}

// GetTxStatus returns /thorchain/tx/status/<hash>. Current and archive share one cache entry per hash.
func (c *Client) GetTxStatus(ctx context.Context, hash string) (TxStatusResponse, error) {
	var status TxStatusResponse

	if hash == "" {
		return status, ErrNoHash
	}

	found, err := c.cache.Read(ctx, hash, &status)
	if err != nil || found {
		return status, err
	}

	endpoint := "/thorchain/tx/status/" + hash

	err = c.rest.GetJSON(ctx, endpoint, nil, &status)
	if err != nil && !rest.IsNotFound(err) {
		return status, fmt.Errorf("[Thornode] txStatus %s: %w", hash, err)
	}

	if status.Tx == nil && c.archive != nil {
		c.logger.Debug().Str("hash", hash).Msg("Tx missing on current node, trying archive")

		status = TxStatusResponse{}
		if err := c.archive.GetJSON(ctx, endpoint, nil, &status); err != nil {
			return status, fmt.Errorf("[Thornode] archive txStatus %s: %w", hash, err)
		}
	}

	if err := c.cache.Write(ctx, hash, status); err != nil {
		return status, err
	}

	return status, nil
}
