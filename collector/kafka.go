package collector

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/yairfalse/tutka/confluent"
	"github.com/yairfalse/tutka/types"
)

const kafkaClustersPath = "/cmk/v2/clusters"

// kafkaCluster is the wire shape of /cmk/v2/clusters items
type kafkaCluster struct {
	ID   string `json:"id"`
	Spec struct {
		DisplayName string `json:"display_name"`
		Cloud       string `json:"cloud"`
		Region      string `json:"region"`
		Config      struct {
			Kind string `json:"kind"`
		} `json:"config"`
	} `json:"spec"`
	Status struct {
		Phase string `json:"phase"`
	} `json:"status"`
}

// KafkaCollector lists Kafka clusters per environment via the cmk API.
type KafkaCollector struct {
	client *confluent.Client
}

func (c *KafkaCollector) Type() string {
	return types.TypeKafka
}

func (c *KafkaCollector) Collect(ctx context.Context, envs []types.Environment) []types.Resource {
	var resources []types.Resource

	for _, env := range envs {
		query := url.Values{"environment": {env.ID}}
		items, err := c.client.GetPaged(ctx, c.client.URL(kafkaClustersPath), query)
		if err != nil {
			log.Warn().Err(err).Str("environment", env.ID).Msg("listing kafka clusters failed, skipping environment")
			continue
		}

		for _, item := range items {
			var cluster kafkaCluster
			if err := json.Unmarshal(item, &cluster); err != nil {
				log.Warn().Err(err).Str("environment", env.ID).Msg("malformed kafka cluster, skipping")
				continue
			}
			resources = append(resources, convertKafkaCluster(cluster, env))
		}
	}

	return resources
}

func convertKafkaCluster(cluster kafkaCluster, env types.Environment) types.Resource {
	r := newResource(cluster.ID, types.TypeKafka, cluster.Spec.DisplayName, env)
	r.Cloud = cluster.Spec.Cloud
	r.Region = cluster.Spec.Region
	if cluster.Spec.Config.Kind != "" {
		r.SetAttr("kind", cluster.Spec.Config.Kind)
	}
	if cluster.Status.Phase != "" {
		r.SetAttr("phase", cluster.Status.Phase)
	}
	return r
}
