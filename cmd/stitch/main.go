// Package main is the entry point for the stitch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/synthome/stitch/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stitch",
		Short: "Stitch synthetic construct assembler",
		Long:  `Stitch assembles fixed-length synthetic DNA constructs from a parts library, placing enhancer, promoter, and anchor modules at precise coordinates over cyclic filler background.`,
	}

	cmd.AddCommand(buildCmd())
	cmd.AddCommand(partsCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
