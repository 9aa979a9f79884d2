package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yairfalse/tutka/config"
	"github.com/yairfalse/tutka/confluent"
	"github.com/yairfalse/tutka/normalize"
)

var environmentsConfig string

// environmentsCmd represents the environments command
var environmentsCmd = &cobra.Command{
	Use:   "environments",
	Short: "List the environments visible to the configured API key",
	Example: `  tutka environments
  tutka environments --config tutka.yml`,
	RunE: runEnvironments,
}

func init() {
	rootCmd.AddCommand(environmentsCmd)

	environmentsCmd.Flags().StringVarP(&environmentsConfig, "config", "c", "", "Path to config file")
}

func runEnvironments(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(environmentsConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := confluent.NewClient(cfg)
	environments, err := client.ListEnvironments(cmd.Context())
	if err != nil {
		return fmt.Errorf("list environments: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCLASS")
	for _, env := range environments {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", env.ID, env.Name, normalize.EnvironmentType(env.Name))
	}
	_ = w.Flush()

	fmt.Printf("\n%d environments\n", len(environments))
	return nil
}
