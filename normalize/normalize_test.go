package normalize

import (
	"testing"

	"github.com/yairfalse/tutka/types"
)

func TestEnvironmentType(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"prod prefix", "PROD-east", "production"},
		{"prd alias", "prd-us", "production"},
		{"production word", "Production Main", "production"},
		{"staging with suffix", "staging-2", "staging"},
		{"stg alias", "stg-eu", "staging"},
		{"stage word", "stage-blue", "staging"},
		{"dev alias", "dev-sandbox", "development"},
		{"development word", "development", "development"},
		{"test word", "test-env", "test"},
		{"tst alias", "tst1", "test"},
		{"qa alias", "qa-cluster", "test"},
		{"uppercase qa", "QA", "test"},
		{"no match", "sandbox", "other"},
		{"empty name", "", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnvironmentType(tt.env); got != tt.want {
				t.Errorf("EnvironmentType(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestCloudProvider(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"aws", "AWS", "aws"},
		{"gcp", "GCP", "gcp"},
		{"azure", "AZURE", "azure"},
		{"mixed case known", "Aws", "aws"},
		{"unrecognized lowercased", "OCI", "oci"},
		{"absent stays absent", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CloudProvider(tt.raw); got != tt.want {
				t.Errorf("CloudProvider(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	resources := []types.Resource{
		{
			ID:      "lkc-111",
			Type:    types.TypeKafka,
			EnvName: "PROD-east",
			Cloud:   "AWS",
			Attrs:   map[string]string{"kind": "Dedicated"},
		},
		{
			ID:      "lsrc-222",
			Type:    types.TypeSchemaRegistry,
			EnvName: "staging-2",
			Cloud:   "GCP",
			Attrs:   map[string]string{"package": "ADVANCED"},
		},
		{
			ID:      "orders-agg",
			Type:    types.TypeFlink,
			EnvName: "qa-cluster",
		},
	}

	Apply(resources)

	kafka := resources[0]
	if got := kafka.Label(types.LabelComponentType); got != "kafka" {
		t.Errorf("component_type = %q, want kafka", got)
	}
	if got := kafka.Label(types.LabelCloudProvider); got != "aws" {
		t.Errorf("cloud_provider = %q, want aws", got)
	}
	if got := kafka.Label(types.LabelEnvironmentType); got != "production" {
		t.Errorf("environment_type = %q, want production", got)
	}
	if got := kafka.Label(types.LabelServiceTier); got != "Dedicated" {
		t.Errorf("service_tier = %q, want Dedicated", got)
	}

	sr := resources[1]
	if got := sr.Label(types.LabelServiceTier); got != "ADVANCED" {
		t.Errorf("service_tier = %q, want ADVANCED", got)
	}
	if got := sr.Label(types.LabelEnvironmentType); got != "staging" {
		t.Errorf("environment_type = %q, want staging", got)
	}

	flink := resources[2]
	// No cloud: the label stays unset
	if got := flink.Label(types.LabelCloudProvider); got != "" {
		t.Errorf("cloud_provider = %q, want unset", got)
	}
	if got := flink.Label(types.LabelEnvironmentType); got != "test" {
		t.Errorf("environment_type = %q, want test", got)
	}
	if got := flink.Label(types.LabelServiceTier); got != "" {
		t.Errorf("service_tier = %q, want unset", got)
	}
}
