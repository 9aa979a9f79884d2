package types

import "strings"

// ResourceType is one entry from the metrics resource catalog. Catalog
// order is preserved everywhere: collection, summaries, and file
// generation all iterate types in the order the API returned them.
type ResourceType struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	IDLabel     string            `json:"id_label,omitempty"`
	Labels      []LabelDescriptor `json:"labels,omitempty"`
}

// LabelDescriptor describes one metric label a resource type exposes
type LabelDescriptor struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	Exportable  bool   `json:"exportable"`
}

// ResolveIDLabel picks the identifier label for a resource type: the
// first exportable descriptor whose key contains "id", case-insensitive.
// Returns "" when no descriptor qualifies; callers then fall back to
// the raw resource id.
func ResolveIDLabel(labels []LabelDescriptor) string {
	for _, l := range labels {
		if !l.Exportable {
			continue
		}
		if strings.Contains(strings.ToLower(l.Key), "id") {
			return l.Key
		}
	}
	return ""
}

// CountExportable reports how many descriptors are exportable
func CountExportable(labels []LabelDescriptor) int {
	n := 0
	for _, l := range labels {
		if l.Exportable {
			n++
		}
	}
	return n
}
