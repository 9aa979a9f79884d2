package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yairfalse/tutka/internal/logging"
)

var (
	version   = "0.1.0"
	debugMode bool

	rootCmd = &cobra.Command{
		Use:   "tutka",
		Short: "Confluent Cloud discovery for Prometheus",
		Long: `Tutka - Confluent Cloud discovery for Prometheus

Tutka walks your Confluent Cloud organization, collects the resources
worth scraping and writes Prometheus file_sd target files pointing at
the Confluent metrics API. Each run leaves the target directory
matching what actually exists; files for resources that disappeared
are removed.

Run it from cron, a systemd timer or a sidecar next to Prometheus.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(debugMode)
		},
	}
)

// Execute runs the root command
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	logging.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.SetVersionTemplate(`Tutka {{.Version}} - Confluent Cloud discovery
`)
}
