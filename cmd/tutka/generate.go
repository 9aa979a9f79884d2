package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/yairfalse/tutka/collector"
	"github.com/yairfalse/tutka/config"
	"github.com/yairfalse/tutka/confluent"
	"github.com/yairfalse/tutka/discovery"
	"github.com/yairfalse/tutka/internal/filter"
	"github.com/yairfalse/tutka/normalize"
	"github.com/yairfalse/tutka/report"
	"github.com/yairfalse/tutka/types"
)

// GenerateCommand implements the 'tutka generate' command
type GenerateCommand struct {
	ConfigPath    string
	OutputDir     string
	Types         []string
	ExcludeTypes  []string
	ExampleConfig string
	DryRun        bool
}

// Run executes one discovery pass: list environments, walk the
// resource type catalog, collect and normalize resources, then bring
// the output directory in line with what was found.
func (cmd *GenerateCommand) Run(ctx context.Context) error {
	cfg, err := config.Load(cmd.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cmd.applyFlags(cfg)

	client := confluent.NewClient(cfg)

	environments, err := client.ListEnvironments(ctx)
	if err != nil {
		return fmt.Errorf("list environments: %w", err)
	}
	if len(environments) == 0 {
		log.Warn().Msg("no environments visible to this API key")
	}

	catalog := resourceCatalog(ctx, client)
	catalog = filter.New(cfg.Types, cfg.ExcludeTypes).Apply(catalog)

	fs := afero.NewOsFs()
	if cmd.DryRun {
		fs, err = dryRunFs(afero.NewOsFs(), cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("prepare dry run: %w", err)
		}
	}

	var groups []discovery.Group
	var counts []report.TypeCount
	for _, rt := range catalog {
		resources := collector.For(rt.Name, client).Collect(ctx, environments)
		normalize.Apply(resources)

		counts = append(counts, report.Count(rt.Name, resources))
		groups = append(groups, discovery.BuildGroups(rt.Name, resources)...)
	}

	reconciler := discovery.NewReconciler(fs, cfg.OutputDir, client.TelemetryHost())
	result, err := reconciler.Reconcile(groups)
	if err != nil {
		return fmt.Errorf("reconcile target files: %w", err)
	}

	if cmd.DryRun {
		fmt.Println("Dry run - no files were touched")
		fmt.Println()
	}

	report.Render(os.Stdout, report.Summary{
		Environments: len(environments),
		Counts:       counts,
		Result:       result,
	})

	if !cmd.DryRun {
		wrote, err := discovery.WriteExampleConfig(fs, cfg.ExampleConfig, cfg.OutputDir, cfg.RefreshInterval)
		if err != nil {
			log.Warn().Err(err).Msg("writing example prometheus config failed")
		} else if wrote {
			fmt.Printf("\nWrote example Prometheus config to %s\n", cfg.ExampleConfig)
		}
	}

	return nil
}

// applyFlags lets command line flags override the loaded config.
func (cmd *GenerateCommand) applyFlags(cfg *config.Config) {
	if cmd.OutputDir != "" {
		cfg.OutputDir = cmd.OutputDir
	}
	if cmd.ExampleConfig != "" {
		cfg.ExampleConfig = cmd.ExampleConfig
	}
	if len(cmd.Types) > 0 {
		cfg.Types = cmd.Types
	}
	if len(cmd.ExcludeTypes) > 0 {
		cfg.ExcludeTypes = cmd.ExcludeTypes
	}
}

// resourceCatalog fetches the resource type catalog. Failure is not
// fatal: the run continues with zero types, and the eviction pass
// clears files whose resources can no longer be confirmed.
func resourceCatalog(ctx context.Context, client *confluent.Client) []types.ResourceType {
	catalog, err := client.ListResourceTypes(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("listing resource types failed, continuing with none")
		return nil
	}
	return catalog
}

// dryRunFs mirrors the current target files into memory so a dry run
// exercises the same write and delete paths without touching disk.
func dryRunFs(base afero.Fs, dir string) (afero.Fs, error) {
	mem := afero.NewMemMapFs()

	matches, err := afero.Glob(base, filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		content, err := afero.ReadFile(base, m)
		if err != nil {
			return nil, err
		}
		if err := afero.WriteFile(mem, m, content, 0o644); err != nil {
			return nil, err
		}
	}
	return mem, nil
}
