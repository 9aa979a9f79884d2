// Package normalize derives the label set shared by every generated
// target group.
package normalize

import (
	"strings"

	"github.com/yairfalse/tutka/types"
)

// cloudNames maps Confluent's provider tokens to label values.
// Unrecognized providers pass through lowercased.
var cloudNames = map[string]string{
	"AWS":   "aws",
	"GCP":   "gcp",
	"AZURE": "azure",
}

// environmentClasses is checked in order, aliases in order within a
// class; the first alias contained in the lowercased environment name
// decides the class.
var environmentClasses = []struct {
	class   string
	aliases []string
}{
	{"production", []string{"prod", "prd", "production"}},
	{"staging", []string{"stg", "staging", "stage"}},
	{"development", []string{"dev", "development"}},
	{"test", []string{"test", "tst", "qa"}},
}

// EnvironmentType classifies an environment display name. Names that
// match no alias are "other".
func EnvironmentType(name string) string {
	lower := strings.ToLower(name)
	for _, ec := range environmentClasses {
		for _, alias := range ec.aliases {
			if strings.Contains(lower, alias) {
				return ec.class
			}
		}
	}
	return "other"
}

// CloudProvider normalizes a raw provider string. Empty stays empty so
// callers can tell an absent provider from an unrecognized one.
func CloudProvider(raw string) string {
	if raw == "" {
		return ""
	}
	if name, ok := cloudNames[strings.ToUpper(raw)]; ok {
		return name
	}
	return strings.ToLower(raw)
}

// Apply derives labels for every resource in place: component_type,
// cloud_provider, environment_type, and service_tier where the type
// has a tier notion.
func Apply(resources []types.Resource) {
	for i := range resources {
		r := &resources[i]

		r.SetLabel(types.LabelComponentType, r.Type)
		if cloud := CloudProvider(r.Cloud); cloud != "" {
			r.SetLabel(types.LabelCloudProvider, cloud)
		}
		r.SetLabel(types.LabelEnvironmentType, EnvironmentType(r.EnvName))

		switch r.Type {
		case types.TypeKafka:
			if kind := r.Attr("kind"); kind != "" {
				r.SetLabel(types.LabelServiceTier, kind)
			}
		case types.TypeSchemaRegistry:
			if pkg := r.Attr("package"); pkg != "" {
				r.SetLabel(types.LabelServiceTier, pkg)
			}
		}
	}
}
