package collector

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/yairfalse/tutka/confluent"
	"github.com/yairfalse/tutka/types"
)

// schemaRegistryCluster is the wire shape of /srcm/v3/clusters items
type schemaRegistryCluster struct {
	ID   string `json:"id"`
	Spec struct {
		DisplayName string `json:"display_name"`
		Package     string `json:"package"`
		Cloud       string `json:"cloud"`
		Region      string `json:"region"`
	} `json:"spec"`
}

// SchemaRegistryCollector lists schema registry clusters per
// environment. Uses the v3 srcm API; the v2 path is deprecated
// upstream.
type SchemaRegistryCollector struct {
	client *confluent.Client
}

func (c *SchemaRegistryCollector) Type() string {
	return types.TypeSchemaRegistry
}

func (c *SchemaRegistryCollector) Collect(ctx context.Context, envs []types.Environment) []types.Resource {
	var resources []types.Resource

	for _, env := range envs {
		query := url.Values{"environment": {env.ID}}
		items, err := c.client.GetPaged(ctx, c.client.URL("/srcm/v3/clusters"), query)
		if err != nil {
			// The srcm API 404s environments without a registry
			var statusErr *confluent.StatusError
			if errors.As(err, &statusErr) && statusErr.NotFound() {
				log.Debug().Str("environment", env.ID).Msg("no schema registry in environment")
				continue
			}
			log.Warn().Err(err).Str("environment", env.ID).Msg("listing schema registry clusters failed, skipping environment")
			continue
		}

		for _, item := range items {
			var cluster schemaRegistryCluster
			if err := json.Unmarshal(item, &cluster); err != nil {
				log.Warn().Err(err).Str("environment", env.ID).Msg("malformed schema registry cluster, skipping")
				continue
			}
			resources = append(resources, convertSchemaRegistryCluster(cluster, env))
		}
	}

	return resources
}

func convertSchemaRegistryCluster(cluster schemaRegistryCluster, env types.Environment) types.Resource {
	// Schema registry clusters rarely carry display names
	name := cluster.Spec.DisplayName
	if name == "" {
		name = cluster.ID
	}

	r := newResource(cluster.ID, types.TypeSchemaRegistry, name, env)
	r.Cloud = cluster.Spec.Cloud
	r.Region = cluster.Spec.Region
	if cluster.Spec.Package != "" {
		r.SetAttr("package", cluster.Spec.Package)
	}
	return r
}
