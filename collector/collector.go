// Package collector gathers Confluent Cloud resources per resource type.
package collector

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yairfalse/tutka/confluent"
	"github.com/yairfalse/tutka/types"
)

// Collector gathers every resource of one type across environments.
// Upstream failures stay inside: an unreachable environment or a
// malformed record costs that unit only, logged as a warning, and the
// remainder comes back as a partial snapshot.
type Collector interface {
	Type() string
	Collect(ctx context.Context, envs []types.Environment) []types.Resource
}

// For returns the collector for a resource type. Unknown types get a
// no-op collector so new catalog entries never break a run.
func For(typeName string, client *confluent.Client) Collector {
	switch typeName {
	case types.TypeKafka:
		return &KafkaCollector{client: client}
	case types.TypeSchemaRegistry:
		return &SchemaRegistryCollector{client: client}
	case types.TypeKSQL:
		return &KSQLCollector{client: client}
	case types.TypeConnector:
		return &ConnectorCollector{client: client}
	case types.TypeFlink:
		return &FlinkCollector{client: client}
	default:
		return &noopCollector{typeName: typeName}
	}
}

// noopCollector handles resource types with no collection support yet
type noopCollector struct {
	typeName string
}

func (c *noopCollector) Type() string {
	return c.typeName
}

func (c *noopCollector) Collect(_ context.Context, _ []types.Environment) []types.Resource {
	log.Warn().Str("type", c.typeName).Msg("no collector for resource type, skipping")
	return nil
}

// newResource creates a resource with the fields every collector fills
func newResource(id, typ, name string, env types.Environment) types.Resource {
	return types.Resource{
		ID:      id,
		Type:    typ,
		Name:    name,
		EnvID:   env.ID,
		EnvName: env.Name,
	}
}
