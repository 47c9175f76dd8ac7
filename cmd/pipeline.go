package cmd

import (
	"path/filepath"
	"time"

	"github.com/koitsu/thorchain-cryptotax/cache"
	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/core"
	"github.com/koitsu/thorchain-cryptotax/mappers"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/prices"
	"github.com/koitsu/thorchain-cryptotax/rest"
	"github.com/koitsu/thorchain-cryptotax/thornode"
	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/koitsu/thorchain-cryptotax/viewblock"
	"github.com/redis/go-redis/v9"
)

const redisCacheTTL = 24 * time.Hour

// newExporter wires the upstream clients, caches and price oracle for an export of taxConf.
func newExporter(sources config.Sources, pricesConf config.Prices, taxConf config.TaxConfig, report bool, recorder core.RunRecorder) (*core.Exporter, error) {
	logger := *config.Log.ZeroLogger

	oracle, err := prices.NewOracle(pricesConf)
	if err != nil {
		return nil, err
	}

	opts := rest.Options{
		RequestsPerSecond: sources.RequestsPerSecond,
		MaxRetries:        int(sources.RetryAttempts),
		RetryMaxWait:      time.Duration(sources.RetryMaxWait) * time.Second,
		Headers:           map[string]string{"x-client-id": sources.ClientID},
	}

	viewblockOpts := opts
	viewblockOpts.Headers = viewblock.Headers(sources.ViewblockAPIKey)

	exporter := &core.Exporter{
		Config: taxConf,
		Dispatcher: mappers.Dispatcher{
			Unsupported: mappers.FileSink{Dir: taxConf.UnsupportedActionsPath},
			Prices:      oracle,
			Logger:      logger,
		},
		Report: report,
		Logger: logger,
	}
	if recorder != nil {
		exporter.Recorder = recorder
	}

	var midgardStore, thornodeStore, viewblockStore cache.Store
	if !util.StrNotSet(sources.RedisAddress) {
		client := redis.NewClient(&redis.Options{Addr: sources.RedisAddress})
		midgardStore = cache.NewRedisStore(client, "midgard:", redisCacheTTL)
		thornodeStore = cache.NewRedisStore(client, "thornode:", redisCacheTTL)
		viewblockStore = cache.NewRedisStore(client, "viewblock:", redisCacheTTL)
	} else {
		midgardFiles := cache.NewFileStore(filepath.Join(taxConf.CachePath, "midgard"))
		thornodeFiles := cache.NewFileStore(filepath.Join(taxConf.CachePath, "thornode"))
		viewblockFiles := cache.NewFileStore(filepath.Join(taxConf.CachePath, "viewblock"))
		midgardStore, thornodeStore, viewblockStore = midgardFiles, thornodeFiles, viewblockFiles
		exporter.Caches = []core.CacheClearer{midgardFiles, thornodeFiles, viewblockFiles}
	}

	exporter.Midgard = midgard.NewClient(rest.NewClient(sources.MidgardURL, opts, logger), midgardStore, logger)

	var archive *rest.Client
	if !util.StrNotSet(sources.ThornodeArchive) {
		archive = rest.NewClient(sources.ThornodeArchive, opts, logger)
	}
	exporter.Thornode = thornode.NewClient(rest.NewClient(sources.ThornodeURL, opts, logger), archive, thornodeStore, logger)

	viewblockURL := sources.ViewblockURL
	if util.StrNotSet(viewblockURL) {
		viewblockURL = viewblock.BaseURL
	}
	exporter.Viewblock = viewblock.NewClient(rest.NewClient(viewblockURL, viewblockOpts, logger), viewblockStore, logger)

	return exporter, nil
}
