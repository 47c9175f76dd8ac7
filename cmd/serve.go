package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/koitsu/thorchain-cryptotax/client"
	"github.com/koitsu/thorchain-cryptotax/config"
	dbTypes "github.com/koitsu/thorchain-cryptotax/db"
	"github.com/koitsu/thorchain-cryptotax/tasks"
	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/spf13/cobra"
)

var serveConfig config.ServeConfig

func init() {
	config.SetupLogFlags(&serveConfig.Log, serveCmd)
	config.SetupDatabaseFlags(&serveConfig.Database, serveCmd)
	config.SetupSourcesFlags(&serveConfig.Sources, serveCmd)
	config.SetupPricesFlags(&serveConfig.Prices, serveCmd)
	config.SetupServeSpecificFlags(&serveConfig, serveCmd)
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves stored exports over HTTP and runs scheduled exports.",
	Long: `Starts an HTTP API returning the stored CryptoTaxCalculator rows of an address as CSV and the
	html reports of the last export. When base.export-every is set, the configured wallets are exported on
	that interval and each run is stored in the database.`,
	PreRunE: setupServe,
	Run:     serve,
}

func setupServe(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	if err := serveConfig.Validate(); err != nil {
		return err
	}

	// Logger
	logLevel := serveConfig.Log.Level
	logPath := serveConfig.Log.Path
	prettyLogging := serveConfig.Log.Pretty
	return config.DoConfigureLogger(logPath, logLevel, prettyLogging)
}

func serve(cmd *cobra.Command, args []string) {
	db, err := dbTypes.Connect(serveConfig.Database)
	if err != nil {
		config.Log.Fatal("Could not establish connection to the database", err)
	}

	sqldb, _ := db.DB()
	sqldb.SetMaxIdleConns(10)
	sqldb.SetMaxOpenConns(100)
	sqldb.SetConnMaxLifetime(time.Hour)
	defer sqldb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reportsDir := "output"
	scheduler := gocron.NewScheduler(time.UTC)

	if !util.StrNotSet(serveConfig.Base.ExportEvery) {
		taxConf, err := config.LoadTaxConfig(serveConfig.Base.Wallets)
		if err != nil {
			config.Log.Fatal("Error loading wallets config", err)
		}
		if err := taxConf.Validate(); err != nil {
			config.Log.Fatal("Invalid wallets config", err)
		}
		reportsDir = taxConf.OutputPath

		exporter, err := newExporter(serveConfig.Sources, serveConfig.Prices, taxConf, true, dbTypes.Recorder{DB: db})
		if err != nil {
			config.Log.Fatal("Error during export setup", err)
		}

		_, err = tasks.ScheduleExport(ctx, scheduler, serveConfig.Base.ExportEvery, serveConfig.Base.ExportOnStart, func(ctx context.Context) (int, error) {
			result, err := exporter.Run(ctx)
			return result.Written, err
		})
		if err != nil {
			config.Log.Fatal("Error scheduling export task", err)
		}
		scheduler.StartAsync()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              serveConfig.Base.Listen,
		Handler:           client.NewRouter(dbTypes.Store{DB: db}, reportsDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			config.Log.Error("Error shutting down server", err)
		}
	}()

	config.Log.Infof("Listening on %s", serveConfig.Base.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		config.Log.Fatal("Server stopped", err)
	}
}
