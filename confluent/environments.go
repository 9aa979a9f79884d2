package confluent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yairfalse/tutka/types"
)

// environment is the wire shape of /org/v2/environments items
type environment struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Metadata    struct {
		ResourceName string `json:"resource_name"`
	} `json:"metadata"`
}

// ListEnvironments returns every environment in the organization, in
// API order. There is nothing to discover without this list, so
// callers treat a failure here as fatal.
func (c *Client) ListEnvironments(ctx context.Context) ([]types.Environment, error) {
	items, err := c.GetPaged(ctx, c.URL("/org/v2/environments"), nil)
	if err != nil {
		return nil, fmt.Errorf("list environments: %w", err)
	}

	envs := make([]types.Environment, 0, len(items))
	for _, item := range items {
		var env environment
		if err := json.Unmarshal(item, &env); err != nil {
			return nil, fmt.Errorf("decode environment: %w", err)
		}
		envs = append(envs, types.Environment{ID: env.ID, Name: env.DisplayName})
	}
	return envs, nil
}

// OrganizationID resolves the organization id by reading a single
// environment's detail record and parsing the CRN in its metadata.
func (c *Client) OrganizationID(ctx context.Context, envID string) (string, error) {
	var env environment
	if err := c.Get(ctx, c.URL("/org/v2/environments/"+envID), nil, &env); err != nil {
		return "", fmt.Errorf("get environment %s: %w", envID, err)
	}

	org := orgFromCRN(env.Metadata.ResourceName)
	if org == "" {
		return "", fmt.Errorf("no organization in resource name %q", env.Metadata.ResourceName)
	}
	return org, nil
}

// orgFromCRN extracts the organization id from a CRN like
// crn://confluent.cloud/organization=<id>/environment=<id>
func orgFromCRN(crn string) string {
	const marker = "organization="
	i := strings.Index(crn, marker)
	if i < 0 {
		return ""
	}
	rest := crn[i+len(marker):]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		return rest[:j]
	}
	return rest
}
