package config

import (
	"errors"

	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/spf13/cobra"
)

type ServeConfig struct {
	Database Database
	Log      log
	Sources  Sources
	Prices   Prices
	Base     serveBase
}

type serveBase struct {
	Wallets       string
	Listen        string
	ExportEvery   string `mapstructure:"export-every"`
	ExportOnStart bool   `mapstructure:"export-on-start"`
}

func SetupServeSpecificFlags(conf *ServeConfig, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&conf.Base.Wallets, "base.wallets", "wallets.toml", "wallets config file (toml or json)")
	cmd.PersistentFlags().StringVar(&conf.Base.Listen, "base.listen", ":8080", "address the api listens on")
	cmd.PersistentFlags().StringVar(&conf.Base.ExportEvery, "base.export-every", "24h", "interval between scheduled exports (empty disables the scheduler)")
	cmd.PersistentFlags().BoolVar(&conf.Base.ExportOnStart, "base.export-on-start", false, "run an export immediately when the scheduler starts")
}

func (conf *ServeConfig) Validate() error {
	if util.StrNotSet(conf.Base.Listen) {
		return errors.New("base listen must be set")
	}

	if err := validateDatabaseConf(conf.Database); err != nil {
		return err
	}

	if util.StrNotSet(conf.Base.ExportEvery) {
		return nil
	}

	if util.StrNotSet(conf.Base.Wallets) {
		return errors.New("base wallets must be set when scheduled exports are enabled")
	}

	if err := validatePricesConf(conf.Prices); err != nil {
		return err
	}

	return validateSourcesConf(&conf.Sources)
}
