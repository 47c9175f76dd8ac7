package midgard

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
	PageSize = 50
	MaxPages = 100
)

type Client struct {
	rest   *rest.Client
	cache  cache.Store
	logger zerolog.Logger
}

func NewClient(restClient *rest.Client, store cache.Store, logger zerolog.Logger) *Client {
	if store == nil {
		store = cache.Nop{}
	}
	return &Client{rest: restClient, cache: store, logger: logger.With().Str("source", "midgard").Logger()}
}

// CountMismatchError means the pages fetched do not add up to the count Midgard reported.
type CountMismatchError struct {
	Address  string
	Expected int
	Fetched  int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("[Midgard] expected %d actions for %s but fetched %d", e.Expected, e.Address, e.Fetched)
}

// GetActions pages through every action of an address, newest first. Results are cached per address.
func (c *Client) GetActions(ctx context.Context, address string) ([]Action, error) {
	var actions []Action

	found, err := c.cache.Read(ctx, address, &actions)
	if err != nil {
		return nil, err
	}
	if found {
		c.logger.Debug().Str("address", address).Int("actions", len(actions)).Msg("Actions read from cache")
		return actions, nil
	}

	c.logger.Info().Str("address", address).Msg("getActions")

	count := 0
	for page := 0; page <= MaxPages; page++ {
		query := url.Values{}
		query.Set("address", address)
		query.Set("limit", strconv.Itoa(PageSize))
		query.Set("offset", strconv.Itoa(page*PageSize))

		var response ActionsResponse
		if err := c.rest.GetJSON(ctx, "/v2/actions", query, &response); err != nil {
			return nil, fmt.Errorf("[Midgard] getActions page %d: %w", page, err)
		}

		count, err = strconv.Atoi(response.Count)
		if err != nil && response.Count != "" {
			return nil, fmt.Errorf("[Midgard] invalid count %q: %w", response.Count, err)
		}

		c.logger.Debug().Int("page", page).Int("total", count).Int("actions", len(response.Actions)).Msg("Fetched actions page")

		if count == 0 {
			break
		}

		actions = append(actions, response.Actions...)

		if len(response.Actions) < PageSize {
			break
		}
	}

	if len(actions) != count {
		return nil, &CountMismatchError{Address: address, Expected: count, Fetched: len(actions)}
	}

	if err := c.cache.Write(ctx, address, actions); err != nil {
		return nil, err
	}

	return actions, nil
}

// GetTcyDistribution returns the RUNE distributions paid to a TCY holder. Addresses that never held TCY
// are reported by Midgard as not found and yield an empty distribution.
func (c *Client) GetTcyDistribution(ctx context.Context, address string) (TcyDistribution, error) {
	var distribution TcyDistribution
	key := "tcy_distribution_" + address

	found, err := c.cache.Read(ctx, key, &distribution)
	if err != nil || found {
		return distribution, err
	}

	err = c.rest.GetJSON(ctx, "/v2/tcy/distribution/"+url.PathEscape(address), nil, &distribution)
	if rest.IsNotFound(err) {
		return TcyDistribution{Address: address}, nil
	}
	if err != nil {
		return distribution, fmt.Errorf("[Midgard] getTcyDistribution: %w", err)
	}

	if err := c.cache.Write(ctx, key, distribution); err != nil {
		return distribution, err
	}

	return distribution, nil
}
