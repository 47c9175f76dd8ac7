package config

import (
	"errors"

	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/spf13/cobra"
)

type ExportConfig struct {
	Database Database
	Log      log
	Sources  Sources
	Prices   Prices
	Base     exportBase
}

type exportBase struct {
	Wallets string
	Persist bool
	Report  bool
}

func SetupExportSpecificFlags(conf *ExportConfig, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&conf.Base.Wallets, "base.wallets", "wallets.toml", "wallets config file (toml or json)")
	cmd.PersistentFlags().BoolVar(&conf.Base.Persist, "base.persist", false, "store the export run and its entries in the database")
	cmd.PersistentFlags().BoolVar(&conf.Base.Report, "base.report", true, "write an html report per wallet")
}

func (conf *ExportConfig) Validate() error {
	if util.StrNotSet(conf.Base.Wallets) {
		return errors.New("base wallets must be set")
	}

	if conf.Base.Persist {
		if err := validateDatabaseConf(conf.Database); err != nil {
			return err
		}
	}

	if err := validatePricesConf(conf.Prices); err != nil {
		return err
	}

	return validateSourcesConf(&conf.Sources)
}
