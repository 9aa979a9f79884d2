package confluent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yairfalse/tutka/types"
)

// resourceDescriptor is the wire shape of
// /v2/metrics/cloud/descriptors/resources items
type resourceDescriptor struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Labels      []struct {
		Key         string `json:"key"`
		Description string `json:"description"`
		Exportable  bool   `json:"exportable"`
	} `json:"labels"`
}

// ListResourceTypes fetches the metrics resource catalog from the
// telemetry API and resolves each type's identifier label. The
// catalog's order is preserved; everything downstream iterates types
// in this order.
func (c *Client) ListResourceTypes(ctx context.Context) ([]types.ResourceType, error) {
	items, err := c.GetPaged(ctx, c.TelemetryURL("/v2/metrics/cloud/descriptors/resources"), nil)
	if err != nil {
		return nil, fmt.Errorf("list resource types: %w", err)
	}

	resourceTypes := make([]types.ResourceType, 0, len(items))
	for _, item := range items {
		var d resourceDescriptor
		if err := json.Unmarshal(item, &d); err != nil {
			return nil, fmt.Errorf("decode resource descriptor: %w", err)
		}

		rt := types.ResourceType{
			Name:        d.Type,
			Description: d.Description,
		}
		for _, l := range d.Labels {
			rt.Labels = append(rt.Labels, types.LabelDescriptor{
				Key:         l.Key,
				Description: l.Description,
				Exportable:  l.Exportable,
			})
		}
		rt.IDLabel = types.ResolveIDLabel(rt.Labels)

		resourceTypes = append(resourceTypes, rt)
	}
	return resourceTypes, nil
}
