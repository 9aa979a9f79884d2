package main

import (
	"github.com/spf13/cobra"
)

var (
	generateConfig        string
	generateOutputDir     string
	generateTypes         []string
	generateExcludeTypes  []string
	generateExampleConfig string
	generateDryRun        bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Discover resources and write file_sd target files",
	Long: `Discover every Confluent Cloud resource the configured API key can
see and write one Prometheus file_sd target file per resource type,
environment and cloud provider.

Files from earlier runs that no longer match a live resource group
are deleted, so the output directory always mirrors the latest
snapshot.`,
	Example: `  tutka generate                             # Discover into ./targets
  tutka generate --output-dir /etc/prometheus/targets
  tutka generate --types kafka,connector     # Only these resource types
  tutka generate --exclude-types flink       # Skip Flink
  tutka generate --dry-run                   # Report without touching disk`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateConfig, "config", "c", "", "Path to config file")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "", "Directory for generated target files")
	generateCmd.Flags().StringSliceVarP(&generateTypes, "types", "t", nil, "Only collect these resource types")
	generateCmd.Flags().StringSliceVar(&generateExcludeTypes, "exclude-types", nil, "Skip these resource types")
	generateCmd.Flags().StringVar(&generateExampleConfig, "example-config", "", "Where to write the example Prometheus config")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Report changes without touching the filesystem")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	gen := &GenerateCommand{
		ConfigPath:    generateConfig,
		OutputDir:     generateOutputDir,
		Types:         generateTypes,
		ExcludeTypes:  generateExcludeTypes,
		ExampleConfig: generateExampleConfig,
		DryRun:        generateDryRun,
	}
	return gen.Run(cmd.Context())
}
