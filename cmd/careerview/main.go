// Package main provides the entry point for the careerview API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/config"
	"github.com/jonathan/careerview/internal/logger"
)

var (
	configPath string
	debugLog   bool
	jsonLog    bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "careerview",
	Short: "CareerView API server and résumé tools",
	Long: "CareerView parses résumés, suggests matching careers, builds learning paths " +
		"and lets you chat with your future self in each career.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default ./careerview.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "log-json", false, "Write logs as JSON")
}

// setup loads configuration and builds the logger for every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(viper.New(), configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		loaded.Log.Debug = debugLog
	}
	if cmd.Flags().Changed("log-json") {
		loaded.Log.JSON = jsonLog
	}

	l, err := logger.New(loaded.Log.JSON, loaded.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	cfg, log = loaded, l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
