package main

import (
	"fmt"
	"os"

	"go-tawk/config"
	"go-tawk/pkg/logger"

	"github.com/spf13/cobra"
)

var configName string

// Execute runs the root command. It only needs to happen once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tawk",
	Short:        "Realtime chat and social backend",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configName, "config", "c", "",
		"config file name under ./config (without .yaml)")
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd)
}

// setup loads the configuration and builds the logger shared by every command.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configName)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}
