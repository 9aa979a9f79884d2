package discovery

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Reconciler writes target files into one directory and evicts the
// files earlier runs left behind.
type Reconciler struct {
	fs     afero.Fs
	dir    string
	target string
}

// NewReconciler returns a reconciler writing to dir on fs, pointing
// every target group at the given telemetry host.
func NewReconciler(fs afero.Fs, dir, target string) *Reconciler {
	return &Reconciler{fs: fs, dir: dir, target: target}
}

// Result reports what one reconciliation did. File names are base
// names relative to the output directory.
type Result struct {
	Written []string
	Deleted []string
	Files   []string
}

// Reconcile writes one file per group and deletes every previously
// generated .yml file no current group claims. Failures on a single
// file are logged and skipped so one bad write never blocks the rest;
// a failed write also keeps its stale predecessor alive until the
// next run. Running twice on the same groups deletes nothing.
func (r *Reconciler) Reconcile(groups []Group) (*Result, error) {
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", r.dir, err)
	}

	previous, err := r.listFiles()
	if err != nil {
		return nil, fmt.Errorf("list existing target files: %w", err)
	}

	result := &Result{}
	current := make(map[string]bool, len(groups))

	for _, g := range groups {
		name := g.Filename()
		current[name] = true

		doc, err := Render(g, r.target)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("rendering target file failed, skipping")
			continue
		}
		if err := afero.WriteFile(r.fs, filepath.Join(r.dir, name), doc, 0o644); err != nil {
			log.Error().Err(err).Str("file", name).Msg("writing target file failed, skipping")
			continue
		}
		result.Written = append(result.Written, name)
	}

	for _, name := range previous {
		if current[name] {
			continue
		}
		if err := r.fs.Remove(filepath.Join(r.dir, name)); err != nil {
			log.Error().Err(err).Str("file", name).Msg("deleting stale target file failed")
			continue
		}
		result.Deleted = append(result.Deleted, name)
	}

	result.Files, err = r.listFiles()
	if err != nil {
		return nil, fmt.Errorf("list output dir: %w", err)
	}
	return result, nil
}

// listFiles returns the sorted base names of the .yml files in the
// output directory.
func (r *Reconciler) listFiles() ([]string, error) {
	matches, err := afero.Glob(r.fs, filepath.Join(r.dir, "*.yml"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}
