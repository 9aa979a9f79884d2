package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yairfalse/tutka/config"
	"github.com/yairfalse/tutka/confluent"
	"github.com/yairfalse/tutka/types"
)

var typesConfig string

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the resource types the metrics API exposes",
	Long: `List the resource type catalog of the Confluent Cloud metrics API.

Each entry names a resource type tutka can collect, the query
parameter its ids are exported under, how many exportable labels it
carries, and a short description.`,
	Example: `  tutka types
  tutka types --config tutka.yml`,
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)

	typesCmd.Flags().StringVarP(&typesConfig, "config", "c", "", "Path to config file")
}

func runTypes(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(typesConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := confluent.NewClient(cfg)
	catalog, err := client.ListResourceTypes(cmd.Context())
	if err != nil {
		return fmt.Errorf("list resource types: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tID LABEL\tLABELS\tDESCRIPTION")
	for _, rt := range catalog {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", rt.Name, rt.IDLabel, types.CountExportable(rt.Labels), rt.Description)
	}
	_ = w.Flush()

	return nil
}
