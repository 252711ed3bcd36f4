package episodegrid

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "episodegrid",
		Short: "episodegrid: browse a knowledge graph as a table",
		Long: `episodegrid loads a graph of entities and typed relationships and lets you
pick any entity to see every entity that points at it, one row each, with the
related entities grouped by relationship type into columns.

The dataset can be a JSON or YAML file, an HTTP URL, a SQLite database or a
Neo4j instance.`,
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.episodegrid.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("dataset", "", "dataset location: file path, http(s) URL, sqlite:// path or neo4j:// URI")
	rootCmd.PersistentFlags().String("dataset-driver", "", "dataset driver (file, http, sqlite, neo4j); inferred when empty")
	rootCmd.PersistentFlags().Bool("repair", false, "repair malformed JSON datasets before decoding")

	// Bind flags to viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("dataset.uri", rootCmd.PersistentFlags().Lookup("dataset"))
	viper.BindPFlag("dataset.driver", rootCmd.PersistentFlags().Lookup("dataset-driver"))
	viper.BindPFlag("dataset.repair", rootCmd.PersistentFlags().Lookup("repair"))
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// A missing .env file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory and cwd with name ".episodegrid" (without extension).
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".episodegrid")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
