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

// flinkComputePool is the wire shape of /fcpm/v2/compute-pools items
type flinkComputePool struct {
	ID   string `json:"id"`
	Spec struct {
		DisplayName string `json:"display_name"`
		Cloud       string `json:"cloud"`
		Region      string `json:"region"`
		MaxCFU      int    `json:"max_cfu"`
	} `json:"spec"`
	Status struct {
		Phase      string `json:"phase"`
		CurrentCFU int    `json:"current_cfu"`
	} `json:"status"`
}

// flinkStatement is the wire shape of /sql/v1 statement items
type flinkStatement struct {
	Name string `json:"name"`
	Spec struct {
		ComputePoolID string `json:"compute_pool_id"`
	} `json:"spec"`
	Status struct {
		Phase string `json:"phase"`
	} `json:"status"`
}

// FlinkCollector gathers compute pools and SQL statements per
// environment, both as "flink" resources. Statements are addressed by
// organization, so the org id is resolved once from the first
// environment's detail record; when that lookup fails only pools are
// collected.
type FlinkCollector struct {
	client *confluent.Client
}

func (c *FlinkCollector) Type() string {
	return types.TypeFlink
}

func (c *FlinkCollector) Collect(ctx context.Context, envs []types.Environment) []types.Resource {
	var resources []types.Resource

	orgID := ""
	if len(envs) > 0 {
		id, err := c.client.OrganizationID(ctx, envs[0].ID)
		if err != nil {
			log.Warn().Err(err).Msg("organization id lookup failed, collecting compute pools only")
		} else {
			orgID = id
		}
	}

	for _, env := range envs {
		resources = append(resources, c.collectPools(ctx, env)...)
		if orgID != "" {
			resources = append(resources, c.collectStatements(ctx, orgID, env)...)
		}
	}

	return resources
}

func (c *FlinkCollector) collectPools(ctx context.Context, env types.Environment) []types.Resource {
	query := url.Values{"environment": {env.ID}}
	items, err := c.client.GetPaged(ctx, c.client.URL("/fcpm/v2/compute-pools"), query)
	if err != nil {
		log.Warn().Err(err).Str("environment", env.ID).Msg("listing compute pools failed, skipping environment")
		return nil
	}

	resources := make([]types.Resource, 0, len(items))
	for _, item := range items {
		var pool flinkComputePool
		if err := json.Unmarshal(item, &pool); err != nil {
			log.Warn().Err(err).Str("environment", env.ID).Msg("malformed compute pool, skipping")
			continue
		}

		name := pool.Spec.DisplayName
		if name == "" {
			name = pool.ID
		}

		r := newResource(pool.ID, types.TypeFlink, name, env)
		r.Cloud = pool.Spec.Cloud
		r.Region = pool.Spec.Region
		r.SetAttr("flink_resource", "compute_pool")
		if pool.Spec.MaxCFU > 0 {
			r.SetAttr("max_cfu", strconv.Itoa(pool.Spec.MaxCFU))
		}
		if pool.Status.CurrentCFU > 0 {
			r.SetAttr("current_cfu", strconv.Itoa(pool.Status.CurrentCFU))
		}
		if pool.Status.Phase != "" {
			r.SetAttr("phase", pool.Status.Phase)
		}
		resources = append(resources, r)
	}
	return resources
}

func (c *FlinkCollector) collectStatements(ctx context.Context, orgID string, env types.Environment) []types.Resource {
	path := fmt.Sprintf("/sql/v1/organizations/%s/environments/%s/statements", orgID, env.ID)
	items, err := c.client.GetPaged(ctx, c.client.URL(path), nil)
	if err != nil {
		log.Warn().Err(err).Str("environment", env.ID).Msg("listing statements failed, skipping environment")
		return nil
	}

	resources := make([]types.Resource, 0, len(items))
	for _, item := range items {
		var stmt flinkStatement
		if err := json.Unmarshal(item, &stmt); err != nil {
			log.Warn().Err(err).Str("environment", env.ID).Msg("malformed statement, skipping")
			continue
		}
		if stmt.Name == "" {
			log.Warn().Str("environment", env.ID).Msg("statement without a name, skipping")
			continue
		}

		// Statements have no id of their own; the metrics API
		// addresses them by name. They also carry no cloud, so they
		// group under "unknown".
		r := newResource(stmt.Name, types.TypeFlink, stmt.Name, env)
		r.SetAttr("flink_resource", "statement")
		if stmt.Spec.ComputePoolID != "" {
			r.SetAttr("compute_pool", stmt.Spec.ComputePoolID)
		}
		if stmt.Status.Phase != "" {
			r.SetAttr("phase", stmt.Status.Phase)
		}
		resources = append(resources, r)
	}
	return resources
}
