// Package discovery renders Prometheus file_sd target files from
// collected resources and keeps the output directory in sync with the
// latest snapshot.
package discovery

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yairfalse/tutka/types"
)

// unknownCloud buckets resources that carry no cloud provider
const unknownCloud = "unknown"

// Group is one (resource type, environment, cloud provider) bucket,
// one file on disk.
type Group struct {
	Type            string
	EnvName         string
	CloudProvider   string
	EnvironmentType string
	IDs             []string
}

// Filename returns the group's file name: type, sanitized environment
// and cloud, joined with underscores.
func (g Group) Filename() string {
	return fmt.Sprintf("%s_%s_%s.yml", g.Type, sanitize(g.EnvName), sanitize(g.CloudProvider))
}

// Job returns the job label value, unique per group
func (g Group) Job() string {
	return fmt.Sprintf("confluent_%s_%s_%s", g.Type, sanitize(g.EnvName), sanitize(g.CloudProvider))
}

// ParamKey returns the metrics API query parameter the group's ids
// belong under.
func (g Group) ParamKey() string {
	return fmt.Sprintf("resource.%s.id", g.Type)
}

// sanitize lowercases a name and replaces spaces and hyphens with
// underscores so it is stable inside file names and job labels.
func sanitize(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// BuildGroups buckets the exportable resources of one type by
// (environment name, cloud provider). Resources flagged NoTelemetryID
// stay out entirely. Buckets come back sorted by environment then
// cloud so file generation is deterministic; ids inside a bucket keep
// collection arrival order.
func BuildGroups(typeName string, resources []types.Resource) []Group {
	index := make(map[string]*Group)

	for _, r := range resources {
		if !r.Exportable() {
			continue
		}

		cloud := r.Label(types.LabelCloudProvider)
		if cloud == "" {
			cloud = unknownCloud
		}

		key := r.EnvName + "\x00" + cloud
		g, ok := index[key]
		if !ok {
			g = &Group{
				Type:            typeName,
				EnvName:         r.EnvName,
				CloudProvider:   cloud,
				EnvironmentType: r.Label(types.LabelEnvironmentType),
			}
			index[key] = g
		}
		g.IDs = append(g.IDs, r.ID)
	}

	groups := make([]Group, 0, len(index))
	for _, g := range index {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].EnvName != groups[j].EnvName {
			return groups[i].EnvName < groups[j].EnvName
		}
		return groups[i].CloudProvider < groups[j].CloudProvider
	})
	return groups
}

// targetGroup is the file_sd document element. Struct order is the
// on-disk key order, keeping output byte-stable across runs.
type targetGroup struct {
	Targets []string            `yaml:"targets"`
	Labels  targetLabels        `yaml:"labels"`
	Params  map[string][]string `yaml:"params"`
}

type targetLabels struct {
	Job             string `yaml:"job"`
	Environment     string `yaml:"environment"`
	CloudProvider   string `yaml:"cloud_provider"`
	EnvironmentType string `yaml:"environment_type"`
}

// Render marshals the one-element file_sd document for a group. The
// target is the telemetry endpoint host.
func Render(g Group, target string) ([]byte, error) {
	doc := []targetGroup{{
		Targets: []string{target},
		Labels: targetLabels{
			Job:             g.Job(),
			Environment:     g.EnvName,
			CloudProvider:   g.CloudProvider,
			EnvironmentType: g.EnvironmentType,
		},
		Params: map[string][]string{
			g.ParamKey(): g.IDs,
		},
	}}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal target group: %w", err)
	}
	return out, nil
}
