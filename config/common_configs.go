package config

import (
	"errors"
	"os"

	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/spf13/cobra"
)

type log struct {
	Level  string
	Path   string
	Pretty bool
}

// These configs are used across multiple commands, and are not specific to a single command
type Database struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string `mapstructure:"log-level"`
}

// Enabled reports whether a database was configured at all. Persistence is optional for exports.
func (d Database) Enabled() bool {
	return !util.StrNotSet(d.Host)
}

type Sources struct {
	MidgardURL        string  `mapstructure:"midgard-url"`
	ThornodeURL       string  `mapstructure:"thornode-url"`
	ThornodeArchive   string  `mapstructure:"thornode-archive-url"`
	ViewblockURL      string  `mapstructure:"viewblock-url"`
	ViewblockAPIKey   string  `mapstructure:"viewblock-api-key"`
	ClientID          string  `mapstructure:"client-id"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
	RetryAttempts     int64   `mapstructure:"retry-attempts"`
	RetryMaxWait      uint64  `mapstructure:"retry-max-wait"`
	RedisAddress      string  `mapstructure:"redis-address"`
}

type Prices struct {
	Source  string
	RepoURL string `mapstructure:"repo-url"`
	Dir     string
}

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
	cmd.PersistentFlags().StringVar(&logConf.Path, "log.path", "", "also append logs to this file")
}

func SetupDatabaseFlags(databaseConf *Database, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&databaseConf.Host, "database.host", "", "database host")
	cmd.PersistentFlags().StringVar(&databaseConf.Port, "database.port", "5432", "database port")
	cmd.PersistentFlags().StringVar(&databaseConf.Database, "database.database", "", "database name")
	cmd.PersistentFlags().StringVar(&databaseConf.User, "database.user", "", "database user")
	cmd.PersistentFlags().StringVar(&databaseConf.Password, "database.password", "", "database password")
	cmd.PersistentFlags().StringVar(&databaseConf.LogLevel, "database.log-level", "", "database loglevel")
}

func SetupSourcesFlags(sourcesConf *Sources, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&sourcesConf.MidgardURL, "sources.midgard-url", "https://midgard.ninerealms.com", "midgard api endpoint")
	cmd.PersistentFlags().StringVar(&sourcesConf.ThornodeURL, "sources.thornode-url", "https://thornode.ninerealms.com", "thornode api endpoint")
	cmd.PersistentFlags().StringVar(&sourcesConf.ThornodeArchive, "sources.thornode-archive-url", "https://thornode-v1.ninerealms.com", "thornode archive endpoint, used when a tx is missing from the current endpoint")
	cmd.PersistentFlags().StringVar(&sourcesConf.ViewblockURL, "sources.viewblock-url", "https://api.viewblock.io", "viewblock api endpoint")
	cmd.PersistentFlags().StringVar(&sourcesConf.ViewblockAPIKey, "sources.viewblock-api-key", "", "viewblock api key (defaults to $VIEWBLOCK_API_KEY)")
	cmd.PersistentFlags().StringVar(&sourcesConf.ClientID, "sources.client-id", "thorchain-cryptotax", "value sent in the x-client-id header")
	cmd.PersistentFlags().Float64Var(&sourcesConf.RequestsPerSecond, "sources.requests-per-second", 1, "max requests per second to each upstream")
	cmd.PersistentFlags().Int64Var(&sourcesConf.RetryAttempts, "sources.retry-attempts", 3, "number of request retries to make")
	cmd.PersistentFlags().Uint64Var(&sourcesConf.RetryMaxWait, "sources.retry-max-wait", 30, "max retry incremental backoff wait time in seconds")
	cmd.PersistentFlags().StringVar(&sourcesConf.RedisAddress, "sources.redis-address", "", "redis address for the shared response cache (file cache only when empty)")
}

func SetupPricesFlags(pricesConf *Prices, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&pricesConf.Source, "prices.source", "table", "price oracle: table or coinbase")
	cmd.PersistentFlags().StringVar(&pricesConf.RepoURL, "prices.repo-url", "", "git repository holding <COIN>.json daily price tables")
	cmd.PersistentFlags().StringVar(&pricesConf.Dir, "prices.dir", "prices", "local checkout of the price repository")
}

func validateDatabaseConf(dbConf Database) error {
	if util.StrNotSet(dbConf.Host) {
		return errors.New("database host must be set")
	}
	if util.StrNotSet(dbConf.Port) {
		return errors.New("database port must be set")
	}
	if util.StrNotSet(dbConf.Database) {
		return errors.New("database name (i.e. database) must be set")
	}
	if util.StrNotSet(dbConf.User) {
		return errors.New("database user must be set")
	}
	if util.StrNotSet(dbConf.Password) {
		return errors.New("database password must be set")
	}

	return nil
}

func validateSourcesConf(sourcesConf *Sources) error {
	if util.StrNotSet(sourcesConf.MidgardURL) {
		return errors.New("sources midgard-url must be set")
	}
	if util.StrNotSet(sourcesConf.ThornodeURL) {
		return errors.New("sources thornode-url must be set")
	}
	if sourcesConf.RequestsPerSecond <= 0 {
		return errors.New("sources requests-per-second must be a positive number")
	}
	if sourcesConf.ViewblockAPIKey == "" {
		sourcesConf.ViewblockAPIKey = os.Getenv("VIEWBLOCK_API_KEY")
	}
	return nil
}

func validatePricesConf(pricesConf Prices) error {
	switch pricesConf.Source {
	case "table", "coinbase":
	default:
		return errors.New("prices source must be table or coinbase")
	}
	if pricesConf.Source == "table" && util.StrNotSet(pricesConf.Dir) {
		return errors.New("prices dir must be set for the table source")
	}
	return nil
}
