package cmd

import (
	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/prices"
	"github.com/spf13/cobra"
)

var updatePricesConfig config.UpdatePricesConfig

func init() {
	config.SetupLogFlags(&updatePricesConfig.Log, updatePricesCmd)
	config.SetupPricesFlags(&updatePricesConfig.Prices, updatePricesCmd)
	rootCmd.AddCommand(updatePricesCmd)
}

var updatePricesCmd = &cobra.Command{
	Use:   "update-prices",
	Short: "Clones or pulls the daily price tables used for reference prices.",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd, viperConf)

		if err := updatePricesConfig.Validate(); err != nil {
			return err
		}

		return config.DoConfigureLogger(updatePricesConfig.Log.Path, updatePricesConfig.Log.Level, updatePricesConfig.Log.Pretty)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := prices.UpdateRepositoryOnDisk(updatePricesConfig.Prices.RepoURL, updatePricesConfig.Prices.Dir); err != nil {
			config.Log.Fatal("Error updating price data", err)
		}
	},
}
