package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile   string       // config file location to load
	viperConf = viper.New() // stores the config file and env values, bound to each command's flags in PreRunE
	rootCmd   = &cobra.Command{
		Use:   "thorchain-cryptotax",
		Short: "Exports THORChain wallet history to CryptoTaxCalculator CSV files",
		Long: `thorchain-cryptotax reads the history of a set of THORChain wallets from Midgard, Thornode
and Viewblock and writes it as CryptoTaxCalculator CSV files. It can also serve stored exports over HTTP.`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// initConfig on initialize of cobra guarantees config values will be set before all subcommands are executed
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.toml, then $HOME/.thorchain-cryptotax/config.toml)")
}

func initConfig() {
	// .env is optional, it only seeds the environment (e.g. VIEWBLOCK_API_KEY)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file. Err: %v", err)
	}

	if cfgFile != "" {
		viperConf.SetConfigFile(cfgFile)
		viperConf.SetConfigType("toml")
	} else {
		// Check in current working dir
		pwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Could not determine current working dir. Err: %v", err)
		}
		if _, err := os.Stat(fmt.Sprintf("%v/config.toml", pwd)); err == nil {
			cfgFile = pwd
		} else {
			// file not in current working dir. Check home dir instead
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("Failed to find user home dir. Err: %v", err)
			}
			cfgFile = fmt.Sprintf("%s/.thorchain-cryptotax", home)
		}
		viperConf.AddConfigPath(cfgFile)
		viperConf.SetConfigType("toml")
		viperConf.SetConfigName("config")
	}

	viperConf.SetEnvPrefix("CRYPTOTAX")
	viperConf.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperConf.AutomaticEnv()

	err := viperConf.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !strings.Contains(err.Error(), "Config File \"config\" Not Found") {
			log.Fatalf("Failed to read config file. Err: %v", err)
		}
		return
	}

	log.Println("CFG successfully read from: ", viperConf.ConfigFileUsed())
}

// bindFlags copies config file and env values into every flag the user did not set on the command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}

		val := v.Get(f.Name)
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
			log.Fatalf("Failed to bind config value for %s. Err: %v", f.Name, err)
		}
	})
}
