// Package filter narrows which resource types a run collects.
package filter

import (
	"github.com/yairfalse/tutka/types"
)

// Filter controls which resource types to collect. Excludes win over
// includes; an empty filter keeps everything.
type Filter struct {
	include map[string]bool
	exclude map[string]bool
}

// New creates a new Filter from the include and exclude type lists.
func New(include, exclude []string) *Filter {
	includeMap := make(map[string]bool)
	for _, t := range include {
		includeMap[t] = true
	}
	excludeMap := make(map[string]bool)
	for _, t := range exclude {
		excludeMap[t] = true
	}

	return &Filter{
		include: includeMap,
		exclude: excludeMap,
	}
}

// ShouldCollect returns true if resources of the given type should be
// collected.
func (f *Filter) ShouldCollect(typ string) bool {
	if f.exclude[typ] {
		return false
	}
	if len(f.include) > 0 {
		return f.include[typ]
	}
	return true
}

// Apply returns the catalog entries that pass the filter, keeping
// catalog order.
func (f *Filter) Apply(catalog []types.ResourceType) []types.ResourceType {
	if f.IsEmpty() {
		return catalog
	}

	kept := make([]types.ResourceType, 0, len(catalog))
	for _, rt := range catalog {
		if f.ShouldCollect(rt.Name) {
			kept = append(kept, rt)
		}
	}
	return kept
}

// IsEmpty returns true if no filters are configured.
func (f *Filter) IsEmpty() bool {
	return len(f.include) == 0 && len(f.exclude) == 0
}
