package main

import (
	"fmt"
	"os"

	"github.com/matst80/slask-storefront/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	envFile    string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront page api",
	Long: `storefront serves the product listing page of the shop: the catalog grid,
sorting, filter sidebar, navigation and wishlist state per visitor session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		cfg, err = config.Load(configPath)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(eventsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
