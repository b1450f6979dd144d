// Package cmd wires the CLI commands for the log retrieval service.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "loglens",
	Short: "LogLens — backend log retrieval service",
	Long: `LogLens serves the rotating log files a backend writes to disk.
It answers bounded, severity-filtered queries over HTTP, streams freshly
appended entries over WebSocket, and offers the same retrieval from the
command line.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.loglens.yaml)")
	rootCmd.PersistentFlags().StringP("root", "r", "./logs", "directory holding the *.log files")
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
}

func initConfig() {
	viper.SetDefault("root", "./logs")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("defaults.amount", 100)
	viper.SetDefault("defaults.severity", "INFO")
	viper.SetDefault("defaults.order", "asc")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".loglens")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
