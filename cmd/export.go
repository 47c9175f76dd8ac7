package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/core"
	dbTypes "github.com/koitsu/thorchain-cryptotax/db"
	"github.com/spf13/cobra"
)

var exportConfig config.ExportConfig

func init() {
	config.SetupLogFlags(&exportConfig.Log, exportCmd)
	config.SetupDatabaseFlags(&exportConfig.Database, exportCmd)
	config.SetupSourcesFlags(&exportConfig.Sources, exportCmd)
	config.SetupPricesFlags(&exportConfig.Prices, exportCmd)
	config.SetupExportSpecificFlags(&exportConfig, exportCmd)
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports the configured wallets to CryptoTaxCalculator CSV files.",
	Long: `Fetches the history of every wallet in the wallets file from Midgard, Thornode and Viewblock,
	maps it to CryptoTaxCalculator rows and writes the CSV files (and optionally an html report per wallet)
	under the configured output path. Inputs that cannot be mapped are saved under <output>/failures.`,
	PreRunE: setupExport,
	Run:     export,
}

func setupExport(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	if err := exportConfig.Validate(); err != nil {
		return err
	}

	// Logger
	logLevel := exportConfig.Log.Level
	logPath := exportConfig.Log.Path
	prettyLogging := exportConfig.Log.Pretty
	return config.DoConfigureLogger(logPath, logLevel, prettyLogging)
}

func export(cmd *cobra.Command, args []string) {
	taxConf, err := config.LoadTaxConfig(exportConfig.Base.Wallets)
	if err != nil {
		config.Log.Fatal("Error loading wallets config", err)
	}
	if err := taxConf.Validate(); err != nil {
		config.Log.Fatal("Invalid wallets config", err)
	}

	var recorder core.RunRecorder
	if exportConfig.Base.Persist {
		db, err := dbTypes.Connect(exportConfig.Database)
		if err != nil {
			config.Log.Fatal("Could not establish connection to the database", err)
		}
		recorder = dbTypes.Recorder{DB: db}
	}

	exporter, err := newExporter(exportConfig.Sources, exportConfig.Prices, taxConf, exportConfig.Base.Report, recorder)
	if err != nil {
		config.Log.Fatal("Error during export setup", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := exporter.Run(ctx)
	if err != nil {
		config.Log.Fatal("Export failed", err)
	}

	config.Log.Infof("Exported %d entries to %s, %d inputs saved as failures", result.Written, exporter.CsvPath(), result.Failures)
}
