package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/yairfalse/tutka/confluent"
	"github.com/yairfalse/tutka/types"
)

// unknownKSQLName stands in for clusters the API returns without a
// display name.
const unknownKSQLName = "Unknown KSQL Cluster"

// ksqlCluster is the wire shape of /ksqldbcm/v2/clusters items
type ksqlCluster struct {
	ID   string `json:"id"`
	Spec struct {
		DisplayName  string `json:"display_name"`
		CSU          int    `json:"csu"`
		KafkaCluster struct {
			ID string `json:"id"`
		} `json:"kafka_cluster"`
	} `json:"spec"`
	Status struct {
		Phase string `json:"phase"`
	} `json:"status"`
}

// KSQLCollector lists ksqlDB clusters per environment. The ksqldbcm
// API has been observed returning partial objects, so decoding is
// defensive: clusters without an id get unknown-<n> sentinels numbered
// across the whole collection, missing names get a placeholder, and a
// response that does not decode at all drops that environment's
// results.
type KSQLCollector struct {
	client *confluent.Client
}

func (c *KSQLCollector) Type() string {
	return types.TypeKSQL
}

func (c *KSQLCollector) Collect(ctx context.Context, envs []types.Environment) []types.Resource {
	var resources []types.Resource

	// unknown numbers synthesized ids across environments
	unknown := 0
	for _, env := range envs {
		envResources, err := c.collectEnv(ctx, env, &unknown)
		if err != nil {
			log.Warn().Err(err).Str("environment", env.ID).Msg("ksql collection failed, skipping environment")
			continue
		}
		resources = append(resources, envResources...)
	}

	return resources
}

func (c *KSQLCollector) collectEnv(ctx context.Context, env types.Environment, unknown *int) ([]types.Resource, error) {
	query := url.Values{"environment": {env.ID}}
	items, err := c.client.GetPaged(ctx, c.client.URL("/ksqldbcm/v2/clusters"), query)
	if err != nil {
		return nil, err
	}

	resources := make([]types.Resource, 0, len(items))
	for _, item := range items {
		var cluster ksqlCluster
		if err := json.Unmarshal(item, &cluster); err != nil {
			return nil, fmt.Errorf("decode ksql cluster: %w", err)
		}

		id := cluster.ID
		synthesized := false
		if id == "" {
			*unknown++
			id = fmt.Sprintf("unknown-%d", *unknown)
			synthesized = true
		}
		name := cluster.Spec.DisplayName
		if name == "" {
			name = unknownKSQLName
		}

		r := newResource(id, types.TypeKSQL, name, env)
		// A synthesized id cannot be queried through the metrics API
		r.NoTelemetryID = synthesized
		if cluster.Spec.KafkaCluster.ID != "" {
			r.SetAttr("kafka_cluster", cluster.Spec.KafkaCluster.ID)
		}
		if cluster.Spec.CSU > 0 {
			r.SetAttr("csu", strconv.Itoa(cluster.Spec.CSU))
		}
		if cluster.Status.Phase != "" {
			r.SetAttr("phase", cluster.Status.Phase)
		}
		resources = append(resources, r)
	}

	return resources, nil
}
