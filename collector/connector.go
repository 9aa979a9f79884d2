package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/yairfalse/tutka/confluent"
	"github.com/yairfalse/tutka/types"
)

// connectorDetail is the wire shape of connect v1 connector detail
// responses
type connectorDetail struct {
	ID struct {
		ID     string `json:"id"`
		IDType string `json:"id_type"`
	} `json:"id"`
	Info struct {
		Name   string            `json:"name"`
		Type   string            `json:"type"`
		Config map[string]string `json:"config"`
	} `json:"info"`
	Status struct {
		Connector struct {
			State string `json:"state"`
		} `json:"connector"`
	} `json:"status"`
}

// ConnectorCollector walks environment -> kafka cluster -> connector
// name -> connector detail. The connect API only lists names, so every
// connector costs one extra GET. Each level skips its failing unit and
// continues with siblings.
type ConnectorCollector struct {
	client *confluent.Client
}

func (c *ConnectorCollector) Type() string {
	return types.TypeConnector
}

func (c *ConnectorCollector) Collect(ctx context.Context, envs []types.Environment) []types.Resource {
	var resources []types.Resource

	for _, env := range envs {
		clusterIDs, err := c.kafkaClusterIDs(ctx, env.ID)
		if err != nil {
			log.Warn().Err(err).Str("environment", env.ID).Msg("listing kafka clusters for connectors failed, skipping environment")
			continue
		}

		for _, clusterID := range clusterIDs {
			names, err := c.listNames(ctx, env.ID, clusterID)
			if err != nil {
				log.Warn().Err(err).Str("environment", env.ID).Str("cluster", clusterID).Msg("listing connectors failed, skipping cluster")
				continue
			}

			for _, name := range names {
				r, err := c.fetchDetail(ctx, env, clusterID, name)
				if err != nil {
					log.Warn().Err(err).Str("environment", env.ID).Str("cluster", clusterID).Str("connector", name).Msg("fetching connector failed, skipping")
					continue
				}
				resources = append(resources, r)
			}
		}
	}

	return resources
}

// kafkaClusterIDs lists the cmk cluster ids of one environment.
// Responses are never cached, so this fetch is independent of the
// kafka collector's.
func (c *ConnectorCollector) kafkaClusterIDs(ctx context.Context, envID string) ([]string, error) {
	query := url.Values{"environment": {envID}}
	items, err := c.client.GetPaged(ctx, c.client.URL(kafkaClustersPath), query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		var cluster struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(item, &cluster); err != nil || cluster.ID == "" {
			continue
		}
		ids = append(ids, cluster.ID)
	}
	return ids, nil
}

// listNames fetches the bare name array the connect API returns
func (c *ConnectorCollector) listNames(ctx context.Context, envID, clusterID string) ([]string, error) {
	path := fmt.Sprintf("/connect/v1/environments/%s/clusters/%s/connectors", envID, clusterID)

	var names []string
	if err := c.client.Get(ctx, c.client.URL(path), nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *ConnectorCollector) fetchDetail(ctx context.Context, env types.Environment, clusterID, name string) (types.Resource, error) {
	path := fmt.Sprintf("/connect/v1/environments/%s/clusters/%s/connectors/%s", env.ID, clusterID, url.PathEscape(name))

	var detail connectorDetail
	if err := c.client.Get(ctx, c.client.URL(path), nil, &detail); err != nil {
		return types.Resource{}, err
	}

	r := newResource(detail.ID.ID, types.TypeConnector, name, env)
	if detail.Info.Name != "" {
		r.Name = detail.Info.Name
	}
	if r.ID == "" {
		// Without an lcc id the metrics API cannot address it
		r.ID = name
		r.NoTelemetryID = true
	}
	r.SetAttr("kafka_cluster", clusterID)
	if detail.Info.Type != "" {
		r.SetAttr("type", detail.Info.Type)
	}
	if class := detail.Info.Config["connector.class"]; class != "" {
		r.SetAttr("class", class)
	}
	if detail.Status.Connector.State != "" {
		r.SetAttr("state", detail.Status.Connector.State)
	}
	return r, nil
}
